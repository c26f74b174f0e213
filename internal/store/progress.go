package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fcsprep/fcsprep/internal/studysession"
)

// ProgressRepo persists per-item answer state as a single-row JSON document,
// the same shape as LedgerRepo. It is what keeps the tracker's
// first-answer-only dedup intact across restarts.
type ProgressRepo struct {
	db *sql.DB
}

var _ studysession.ProgressStore = (*ProgressRepo)(nil)

// LoadProgress returns the stored answer state, (nil, nil) when none has
// been saved yet, or an error wrapping studysession.ErrCorruptProgress when
// the row cannot be decoded.
func (r *ProgressRepo) LoadProgress(ctx context.Context) (*studysession.Progress, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM study_progress WHERE id = 1`,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}

	var p studysession.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w: %w", studysession.ErrCorruptProgress, err)
	}
	return &p, nil
}

// SaveProgress writes the full answer state in one UPSERT.
func (r *ProgressRepo) SaveProgress(ctx context.Context, p *studysession.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO study_progress (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
