package reward

import "sync"

// NotificationKind distinguishes the reward notification streams.
type NotificationKind string

const (
	NoteXP          NotificationKind = "xp"
	NoteLevelUp     NotificationKind = "level_up"
	NoteAchievement NotificationKind = "achievement"
	NoteChallenge   NotificationKind = "challenge"
)

// Notification is a request for transient UI feedback. The engine emits
// these; rendering, animation, and sound are entirely the adapter's concern.
type Notification struct {
	Kind        NotificationKind
	Amount      int    // XP amount for NoteXP
	Reason      string // award reason for NoteXP
	Level       Level  // populated for NoteLevelUp
	Achievement Achievement
	Challenge   Challenge
}

// Notifier receives notification requests synchronously during event
// processing. Implementations must not call back into the engine.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

// Feed is a Notifier that buffers notifications until drained. The TUI
// drains it after each reported event to show toasts; tests use it to
// assert on emitted streams.
type Feed struct {
	mu    sync.Mutex
	notes []Notification
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, n)
}

// Drain returns all buffered notifications and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	notes := f.notes
	f.notes = nil
	return notes
}
