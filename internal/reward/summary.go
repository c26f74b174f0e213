package reward

import "time"

// AchievementStatus pairs a catalog entry with its unlock state for display.
type AchievementStatus struct {
	Achievement
	Unlocked   bool
	UnlockedAt time.Time
}

// Summary is the read-only view the presentation layer renders from. It is
// a value snapshot; mutating it has no effect on the engine.
type Summary struct {
	Level           Level
	TotalXP         int
	ProgressPercent int
	Streak          int
	StreakEmoji     string
	Achievements    []AchievementStatus
	Challenges      []Challenge
	Statistics      Statistics
	Settings        Settings
}

// UnlockedCount returns how many achievements are unlocked.
func (s Summary) UnlockedCount() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// Summary builds a display snapshot of the current ledger state.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	unlockedAt := map[string]time.Time{}
	for _, u := range e.ledger.Achievements {
		unlockedAt[u.ID] = u.UnlockedAt
	}

	achievements := make([]AchievementStatus, 0, len(Catalog))
	for _, a := range Catalog {
		at, ok := unlockedAt[a.ID]
		achievements = append(achievements, AchievementStatus{
			Achievement: a,
			Unlocked:    ok,
			UnlockedAt:  at,
		})
	}

	challenges := make([]Challenge, len(e.ledger.DailyChallenges))
	copy(challenges, e.ledger.DailyChallenges)

	stats := e.ledger.Statistics
	stats.CategoriesStudied = make(map[string]int, len(e.ledger.Statistics.CategoriesStudied))
	for k, v := range e.ledger.Statistics.CategoriesStudied {
		stats.CategoriesStudied[k] = v
	}

	return Summary{
		Level:           LevelFor(e.ledger.TotalXP),
		TotalXP:         e.ledger.TotalXP,
		ProgressPercent: ProgressPercent(e.ledger.TotalXP),
		Streak:          e.ledger.DailyStreak,
		StreakEmoji:     StreakEmoji(e.ledger.DailyStreak),
		Achievements:    achievements,
		Challenges:      challenges,
		Statistics:      stats,
		Settings:        e.ledger.Settings,
	}
}
