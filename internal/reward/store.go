package reward

import (
	"context"
	"errors"
	"time"
)

// ErrCorruptLedger marks a stored ledger that could not be decoded. The
// engine recovers by falling back to defaults; it is never surfaced as a
// user-facing failure.
var ErrCorruptLedger = errors.New("stored ledger is corrupt")

// Store is the persistence port for the ledger. Save must write the full
// ledger in a single atomic operation; Load returns (nil, nil) when no
// ledger has been saved yet and wraps ErrCorruptLedger when the stored
// record cannot be decoded.
type Store interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, l *Ledger) error
}

// XPEvent is one entry in the append-only award history.
type XPEvent struct {
	Amount    int
	Reason    string
	SessionID string
	TotalXP   int // ledger total after the award
	At        time.Time
}

// EventLog records every XP award for the history view. Logging failures
// must never fail the award itself.
type EventLog interface {
	AppendXPEvent(ctx context.Context, e XPEvent) error
}
