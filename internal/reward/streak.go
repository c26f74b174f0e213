package reward

import "time"

// LoginBonusXP is awarded once per calendar day on the first study activity.
const LoginBonusXP = 10

// streakBonusCap limits how far the streak bonus grows.
const streakBonusCap = 30

// StreakBonus returns the extra XP for a continued streak, on top of the
// login bonus. Zero at streak 1, capped at streak 30.
func StreakBonus(streak int) int {
	if streak > streakBonusCap {
		streak = streakBonusCap
	}
	return 10*streak - 10
}

// streakOutcome is the result of applying a day to the streak state machine.
type streakOutcome struct {
	streak   int
	advanced bool // a new calendar day was recorded; bonuses are due
}

// nextStreak applies the streak rules: first-ever study day starts at 1,
// a repeat call on the same day changes nothing, the day after the last
// study day increments, and any gap resets to 1.
func nextStreak(today time.Time, last *time.Time, current int) streakOutcome {
	if last == nil {
		return streakOutcome{streak: 1, advanced: true}
	}
	switch {
	case sameDay(today, *last):
		return streakOutcome{streak: current, advanced: false}
	case sameDay(dayStart(*last).AddDate(0, 0, 1), today):
		return streakOutcome{streak: current + 1, advanced: true}
	default:
		return streakOutcome{streak: 1, advanced: true}
	}
}

// dayStart truncates a time to midnight in its own location.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
