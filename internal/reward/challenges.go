package reward

import (
	"math/rand"
	"time"
)

// ActiveChallengeCount is how many daily challenges are live at once.
const ActiveChallengeCount = 3

// ChallengeTemplate is a catalog entry for daily challenge generation.
// RequiresCategory, when set, makes the template eligible only if that
// category exists in the configured category list, so challenges can never
// reference content that is not loaded.
type ChallengeTemplate struct {
	ID               string
	Description      string
	XP               int
	RequiresCategory string
	Done             func(s Snapshot) bool
}

// ChallengeTemplates is the static pool daily challenges are drawn from.
var ChallengeTemplates = []ChallengeTemplate{
	{
		ID: "review20", Description: "Review 20 flashcards", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.FlashcardsReviewed >= 20 },
	},
	{
		ID: "score80", Description: "Score 80%+ on a practice test", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.HighScore >= 80 },
	},
	{
		ID: "studyEligibility", Description: "Study all Eligibility category terms", XP: 50,
		RequiresCategory: "Eligibility",
		Done:             func(s Snapshot) bool { return s.Daily.CategoriesStudied["Eligibility"] },
	},
	{
		ID: "complete3Scenarios", Description: "Complete 3 scenario practices", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.ScenariosCompleted >= 3 },
	},
	{
		ID: "perfectCategory", Description: "Achieve a perfect score on any category practice", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.PerfectCategoryScore },
	},
	{
		ID: "study30min", Description: "Study for 30 minutes", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.StudyTime >= 30*time.Minute },
	},
	{
		ID: "reviewAllCategories", Description: "Review terms from all categories", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.AllCategoriesReviewed },
	},
	{
		ID: "complete5Tests", Description: "Complete 5 practice tests", XP: 50,
		Done: func(s Snapshot) bool { return s.Daily.TestsCompleted >= 5 },
	},
}

// challengeTemplateByID looks up a template for completion checks.
func challengeTemplateByID(id string) (ChallengeTemplate, bool) {
	for _, t := range ChallengeTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return ChallengeTemplate{}, false
}

// generateChallenges draws exactly ActiveChallengeCount distinct templates
// without replacement from the eligible pool.
func generateChallenges(rng *rand.Rand, categories []string) []Challenge {
	known := map[string]bool{}
	for _, c := range categories {
		known[c] = true
	}

	var pool []ChallengeTemplate
	for _, t := range ChallengeTemplates {
		if t.RequiresCategory != "" && !known[t.RequiresCategory] {
			continue
		}
		pool = append(pool, t)
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	n := ActiveChallengeCount
	if n > len(pool) {
		n = len(pool)
	}

	challenges := make([]Challenge, 0, n)
	for _, t := range pool[:n] {
		challenges = append(challenges, Challenge{
			ID:          t.ID,
			Description: t.Description,
			XP:          t.XP,
		})
	}
	return challenges
}
