package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LedgerRepo returns the reward ledger repository backed by this store.
func (s *Store) LedgerRepo() *LedgerRepo {
	return &LedgerRepo{db: s.db}
}

// ProgressRepo returns the study answer-state repository backed by this store.
func (s *Store) ProgressRepo() *ProgressRepo {
	return &ProgressRepo{db: s.db}
}

// XPEventRepo returns the XP event log backed by this store.
func (s *Store) XPEventRepo() (*XPEventRepo, error) {
	sc, err := newSequenceCounter(s.db)
	if err != nil {
		return nil, err
	}
	return &XPEventRepo{db: s.db, seq: sc}, nil
}

// Reset wipes all persisted reward state. The schema stays in place so the
// next run starts from a fresh ledger.
func (s *Store) Reset() error {
	if _, err := newSequenceCounter(s.db); err != nil {
		return err
	}
	stmts := []string{
		`DELETE FROM reward_ledger`,
		`DELETE FROM study_progress`,
		`DELETE FROM xp_events`,
		`UPDATE global_sequence SET next_val = 1 WHERE id = 1`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Statements are idempotent so Open can run
// them unconditionally on every start.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reward_ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS study_progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS xp_events (
			sequence INTEGER PRIMARY KEY,
			amount INTEGER NOT NULL,
			reason TEXT NOT NULL,
			session_id TEXT NOT NULL,
			total_xp INTEGER NOT NULL,
			at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_xp_events_at ON xp_events (at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FCSPREP_DB environment variable
// 2. $XDG_DATA_HOME/fcsprep/fcsprep.db
// 3. ~/.local/share/fcsprep/fcsprep.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FCSPREP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "fcsprep", "fcsprep.db")
	return p, EnsureDir(p)
}

// DefaultDataDir returns the directory holding the database and log files.
func DefaultDataDir() (string, error) {
	p, err := DefaultDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
