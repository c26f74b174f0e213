package reward

import "time"

// SessionState holds process-lifetime counters. It is never persisted;
// session-scoped achievements (rapid review, test scores) read from it.
type SessionState struct {
	FlashcardsReviewed int
	StartedAt          time.Time
	LastTestScore      int
	LastCategoryScore  int
}

// DailyState holds counters scoped to the current calendar day. It is
// transient and rebuilt from zero on the first event of each new day.
type DailyState struct {
	FlashcardsReviewed    int
	TestsCompleted        int
	ScenariosCompleted    int
	HighScore             int
	PerfectCategoryScore  bool
	CategoriesStudied     map[string]bool
	AllFlashcardsReviewed bool
	AllCategoriesReviewed bool
	StudyTime             time.Duration
}

func newSessionState(now time.Time) *SessionState {
	return &SessionState{StartedAt: now}
}

func newDailyState() *DailyState {
	return &DailyState{CategoriesStudied: map[string]bool{}}
}

// Snapshot is the read-only view handed to achievement and challenge
// predicates. Predicates are pure functions over this struct; none of them
// reach back into the engine.
type Snapshot struct {
	Ledger  *Ledger
	Session *SessionState
	Daily   *DailyState
	Config  Config
	Now     time.Time
}
