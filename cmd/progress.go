package cmd

import (
	"fmt"
	"sort"

	"github.com/fcsprep/fcsprep/internal/config"
	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/store"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show level, XP, streak, and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		// Read the ledger directly rather than starting an engine, so an
		// inspection command never triggers a day rollover or login award.
		ledger, err := st.LedgerRepo().Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load ledger: %w", err)
		}
		if ledger == nil {
			ledger = reward.NewLedger()
		}

		printProgress(ledger)
		return nil
	},
}

func printProgress(l *reward.Ledger) {
	lv := reward.LevelFor(l.TotalXP)
	fmt.Printf("Level %d — %s\n", lv.Level, lv.Title)
	fmt.Printf("XP: %d (%d%% to next level)\n", l.TotalXP, reward.ProgressPercent(l.TotalXP))
	fmt.Printf("Streak: %s %d day(s)\n", reward.StreakEmoji(l.DailyStreak), l.DailyStreak)

	unlocked := map[string]bool{}
	for _, a := range l.Achievements {
		unlocked[a.ID] = true
	}
	fmt.Printf("\nAchievements (%d/%d):\n", len(l.Achievements), len(reward.Catalog))
	for _, a := range reward.Catalog {
		mark := " "
		if unlocked[a.ID] {
			mark = "x"
		}
		fmt.Printf("  [%s] %s %s — %s\n", mark, a.Icon, a.Name, a.Description)
	}

	if len(l.DailyChallenges) > 0 {
		fmt.Println("\nToday's challenges:")
		for _, c := range l.DailyChallenges {
			mark := " "
			if c.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s (+%d XP)\n", mark, c.Description, c.XP)
		}
	}

	s := l.Statistics
	fmt.Println("\nLifetime:")
	fmt.Printf("  Flashcards reviewed:      %d\n", s.FlashcardsReviewed)
	fmt.Printf("  Practice tests completed: %d\n", s.PracticeTestsCompleted)
	fmt.Printf("  Full tests completed:     %d\n", s.FullTestsCompleted)
	fmt.Printf("  Scenarios completed:      %d\n", s.ScenariosCompleted)
	fmt.Printf("  Perfect scores:           %d\n", s.PerfectScores)

	if len(s.CategoriesStudied) > 0 {
		cats := make([]string, 0, len(s.CategoriesStudied))
		for c := range s.CategoriesStudied {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		fmt.Println("\nCategories studied:")
		for _, c := range cats {
			fmt.Printf("  %-25s %d\n", c, s.CategoriesStudied[c])
		}
	}
}

// openStore resolves the database path from flags and config and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
