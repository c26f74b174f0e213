package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fcsprep/fcsprep/internal/reward"
)

// LedgerRepo persists the reward ledger as a single-row JSON document.
// The whole ledger is small and always read or written as a unit, so a
// document column beats a normalized schema here.
type LedgerRepo struct {
	db *sql.DB
}

var _ reward.Store = (*LedgerRepo)(nil)

// Load returns the stored ledger, (nil, nil) when none has been saved yet,
// or an error wrapping reward.ErrCorruptLedger when the row cannot be
// decoded.
func (r *LedgerRepo) Load(ctx context.Context) (*reward.Ledger, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM reward_ledger WHERE id = 1`,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}

	// Unmarshal onto defaults so fields absent from older ledgers keep
	// their default values instead of zeroing out.
	l := reward.NewLedger()
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("decode ledger: %w: %w", reward.ErrCorruptLedger, err)
	}
	return l, nil
}

// Save writes the full ledger in one UPSERT.
func (r *LedgerRepo) Save(ctx context.Context, l *reward.Ledger) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reward_ledger (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
