package reward

import "time"

// achievementXP is the flat bonus for unlocking any achievement.
const achievementXP = 100

// rapid-review window for the speedReader achievement.
const speedReaderWindow = 10 * time.Minute

// Achievement is a one-time unlockable badge. Unlocked is a pure predicate
// over a state snapshot; no predicate inspects another achievement's unlock
// state, so catalog order never changes which achievements unlock.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    func(s Snapshot) bool
}

// Catalog is the static achievement table. Slice order is the evaluation
// order, which must stay deterministic: each unlock awards XP that is
// visible to level checks later in the same pass.
var Catalog = []Achievement{
	{
		ID: "firstSteps", Name: "First Steps", Icon: "👶",
		Description: "Complete first flashcard review",
		Unlocked:    func(s Snapshot) bool { return s.Ledger.Statistics.FlashcardsReviewed >= 1 },
	},
	{
		ID: "quickLearner", Name: "Quick Learner", Icon: "🏃",
		Description: "Complete 10 flashcards in one session",
		Unlocked:    func(s Snapshot) bool { return s.Session.FlashcardsReviewed >= 10 },
	},
	{
		ID: "memoryMaster", Name: "Memory Master", Icon: "🧠",
		Description: "Review all flashcards in one day",
		Unlocked:    func(s Snapshot) bool { return s.Daily.AllFlashcardsReviewed },
	},
	{
		ID: "testTaker", Name: "Test Taker", Icon: "📝",
		Description: "Complete first practice test",
		Unlocked:    func(s Snapshot) bool { return s.Ledger.Statistics.PracticeTestsCompleted >= 1 },
	},
	{
		ID: "highScorer", Name: "High Scorer", Icon: "🎯",
		Description: "Score 90%+ on any test",
		Unlocked:    func(s Snapshot) bool { return s.Session.LastTestScore >= 90 },
	},
	{
		ID: "perfectScore", Name: "Perfect Score", Icon: "💯",
		Description: "Achieve 100% on any test",
		Unlocked:    func(s Snapshot) bool { return s.Session.LastTestScore == 100 },
	},
	{
		ID: "consistentStudent", Name: "Consistent Student", Icon: "📚",
		Description: "3-day study streak",
		Unlocked:    func(s Snapshot) bool { return s.Ledger.DailyStreak >= 3 },
	},
	{
		ID: "dedicatedLearner", Name: "Dedicated Learner", Icon: "🔥",
		Description: "7-day study streak",
		Unlocked:    func(s Snapshot) bool { return s.Ledger.DailyStreak >= 7 },
	},
	{
		ID: "studyWarrior", Name: "Study Warrior", Icon: "⚔️",
		Description: "14-day study streak",
		Unlocked:    func(s Snapshot) bool { return s.Ledger.DailyStreak >= 14 },
	},
	{
		ID: "ceExpert", Name: "CE Expert", Icon: "👑",
		Description: "30-day study streak",
		Unlocked:    func(s Snapshot) bool { return s.Ledger.DailyStreak >= 30 },
	},
	{
		ID: "categorySpecialist", Name: "Category Specialist", Icon: "🏆",
		Description: "Score 95%+ in a specific category",
		Unlocked:    func(s Snapshot) bool { return s.Session.LastCategoryScore >= 95 },
	},
	{
		ID: "nightOwl", Name: "Night Owl", Icon: "🦉",
		Description: "Study after 10 PM",
		Unlocked:    func(s Snapshot) bool { return s.Now.Hour() >= 22 },
	},
	{
		ID: "earlyBird", Name: "Early Bird", Icon: "🐦",
		Description: "Study before 7 AM",
		Unlocked:    func(s Snapshot) bool { return s.Now.Hour() < 7 },
	},
	{
		ID: "speedReader", Name: "Speed Reader", Icon: "⚡",
		Description: "Complete 50 flashcards in under 10 minutes",
		Unlocked: func(s Snapshot) bool {
			return s.Session.FlashcardsReviewed >= 50 &&
				s.Now.Sub(s.Session.StartedAt) < speedReaderWindow
		},
	},
	{
		ID: "scenarioMaster", Name: "Scenario Master", Icon: "🎭",
		Description: "Complete all scenario practices",
		Unlocked: func(s Snapshot) bool {
			return s.Ledger.Statistics.ScenariosCompleted >= s.Config.TotalScenarios
		},
	},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
