package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/studysession"
)

// Memory is an in-process store for ephemeral runs: nothing touches disk and
// everything is gone when the process exits. It round-trips the ledger and
// answer state through JSON so callers observe the same encoding behavior as
// the SQLite store.
type Memory struct {
	mu       sync.Mutex
	ledger   []byte
	progress []byte
	events   []StoredXPEvent
	seq      int64
}

var (
	_ reward.Store               = (*Memory)(nil)
	_ reward.EventLog            = (*Memory)(nil)
	_ studysession.ProgressStore = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) (*reward.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ledger == nil {
		return nil, nil
	}
	l := reward.NewLedger()
	if err := json.Unmarshal(m.ledger, l); err != nil {
		return nil, fmt.Errorf("decode ledger: %w: %w", reward.ErrCorruptLedger, err)
	}
	return l, nil
}

func (m *Memory) Save(_ context.Context, l *reward.Ledger) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = data
	return nil
}

func (m *Memory) LoadProgress(context.Context) (*studysession.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.progress == nil {
		return nil, nil
	}
	var p studysession.Progress
	if err := json.Unmarshal(m.progress, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w: %w", studysession.ErrCorruptProgress, err)
	}
	return &p, nil
}

func (m *Memory) SaveProgress(_ context.Context, p *studysession.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = data
	return nil
}

func (m *Memory) AppendXPEvent(_ context.Context, e reward.XPEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.events = append(m.events, StoredXPEvent{Sequence: m.seq, XPEvent: e})
	return nil
}

// Recent returns up to limit events, newest first.
func (m *Memory) Recent(_ context.Context, limit int) ([]StoredXPEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.events)
	if limit < n {
		n = limit
	}
	out := make([]StoredXPEvent, 0, n)
	for i := len(m.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}
