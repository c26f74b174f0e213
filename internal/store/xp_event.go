package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/fcsprep/fcsprep/internal/reward"
)

// sequenceCounter manages the monotonic sequence number for XP events.
// SQLite auto-increment IDs can be reused after deletes; this counter
// guarantees every event gets a never-repeated, strictly increasing
// sequence, so history queries have a stable total order. The mutex
// serializes within the process; the RETURNING clause makes the increment
// atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// StoredXPEvent is an XP award plus its assigned sequence number.
type StoredXPEvent struct {
	Sequence int64
	reward.XPEvent
}

// XPEventRepo is the append-only XP award history.
type XPEventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ reward.EventLog = (*XPEventRepo)(nil)

// AppendXPEvent records one XP award.
func (r *XPEventRepo) AppendXPEvent(ctx context.Context, e reward.XPEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO xp_events (sequence, amount, reason, session_id, total_xp, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		seq, e.Amount, e.Reason, e.SessionID, e.TotalXP, e.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append xp event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *XPEventRepo) Recent(ctx context.Context, limit int) ([]StoredXPEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, amount, reason, session_id, total_xp, at
		 FROM xp_events ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}
	defer rows.Close()

	var events []StoredXPEvent
	for rows.Next() {
		var e StoredXPEvent
		var at time.Time
		if err := rows.Scan(&e.Sequence, &e.Amount, &e.Reason, &e.SessionID, &e.TotalXP, &at); err != nil {
			return nil, fmt.Errorf("scan xp event: %w", err)
		}
		e.At = at
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate xp events: %w", err)
	}
	return events, nil
}

// EarnedSince sums XP awarded at or after the cutoff.
func (r *XPEventRepo) EarnedSince(ctx context.Context, since time.Time) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM xp_events WHERE at >= ?`,
		since.UTC(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum xp events: %w", err)
	}
	return total, nil
}

// TotalsByReason aggregates lifetime XP per award reason, largest first.
func (r *XPEventRepo) TotalsByReason(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT reason, SUM(amount) FROM xp_events GROUP BY reason`)
	if err != nil {
		return nil, fmt.Errorf("query xp totals: %w", err)
	}
	defer rows.Close()

	totals := map[string]int{}
	for rows.Next() {
		var reason string
		var amount int
		if err := rows.Scan(&reason, &amount); err != nil {
			return nil, fmt.Errorf("scan xp total: %w", err)
		}
		totals[reason] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate xp totals: %w", err)
	}
	return totals, nil
}
