package reward

import "time"

// AchievementUnlock records a single unlocked achievement. The slice on the
// ledger is append-only: entries are never removed or re-added.
type AchievementUnlock struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// Challenge is one of the three daily challenges active on the ledger.
type Challenge struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	XP          int    `json:"xp"`
	Completed   bool   `json:"completed"`
}

// Settings gate reward side effects. When Enabled is false every study event
// is a no-op: no XP, no unlocks, no ledger mutation.
type Settings struct {
	Enabled           bool `json:"enabled"`
	SoundEnabled      bool `json:"soundEnabled"`
	AnimationsEnabled bool `json:"animationsEnabled"`
}

// SettingsPatch merges into Settings. Nil fields are left unchanged.
type SettingsPatch struct {
	Enabled           *bool
	SoundEnabled      *bool
	AnimationsEnabled *bool
}

// Statistics are lifetime counters. All fields only ever increase.
type Statistics struct {
	FlashcardsReviewed     int            `json:"flashcardsReviewed"`
	PracticeTestsCompleted int            `json:"practiceTestsCompleted"`
	FullTestsCompleted     int            `json:"fullTestsCompleted"`
	ScenariosCompleted     int            `json:"scenariosCompleted"`
	PerfectScores          int            `json:"perfectScores"`
	TotalStudyTimeMs       int64          `json:"totalStudyTime"`
	CategoriesStudied      map[string]int `json:"categoriesStudied"`
}

// Milestones is the engine-owned record of question-answer milestones. It
// lives on the ledger so that every-10-questions awards survive restarts and
// can never be granted twice, instead of being reconstructed by the caller.
type Milestones struct {
	QuestionsAnswered int `json:"questionsAnswered"`
	QuestionsCorrect  int `json:"questionsCorrect"`
	LastAwarded       int `json:"lastAwarded"`
}

// Ledger is the persisted aggregate of all reward state for one device.
type Ledger struct {
	TotalXP         int                 `json:"totalXP"`
	DailyStreak     int                 `json:"dailyStreak"`
	LastStudyDate   *time.Time          `json:"lastStudyDate,omitempty"`
	Achievements    []AchievementUnlock `json:"achievements"`
	DailyChallenges []Challenge         `json:"dailyChallenges"`
	Settings        Settings            `json:"settings"`
	Statistics      Statistics          `json:"statistics"`
	Milestones      Milestones          `json:"milestones"`
}

// NewLedger returns a ledger with default state: zero progress, all
// settings on. Deserialization unmarshals on top of these defaults so
// fields missing from older stored records keep sane values.
func NewLedger() *Ledger {
	return &Ledger{
		Settings: Settings{
			Enabled:           true,
			SoundEnabled:      true,
			AnimationsEnabled: true,
		},
		Statistics: Statistics{
			CategoriesStudied: map[string]int{},
		},
	}
}

// HasAchievement reports whether the achievement id has been unlocked.
func (l *Ledger) HasAchievement(id string) bool {
	for _, a := range l.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (s *Settings) apply(patch SettingsPatch) {
	if patch.Enabled != nil {
		s.Enabled = *patch.Enabled
	}
	if patch.SoundEnabled != nil {
		s.SoundEnabled = *patch.SoundEnabled
	}
	if patch.AnimationsEnabled != nil {
		s.AnimationsEnabled = *patch.AnimationsEnabled
	}
}
