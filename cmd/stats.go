package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the XP award history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo, err := st.XPEventRepo()
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}

		totals, err := repo.TotalsByReason(ctx)
		if err != nil {
			return err
		}
		if len(totals) == 0 {
			fmt.Println("No XP earned yet. Run fcsprep to start studying.")
			return nil
		}

		today, err := repo.EarnedSince(ctx, startOfDay(time.Now()))
		if err != nil {
			return err
		}
		fmt.Printf("XP earned today: %d\n", today)

		reasons := make([]string, 0, len(totals))
		for r := range totals {
			reasons = append(reasons, r)
		}
		sort.Slice(reasons, func(i, j int) bool {
			if totals[reasons[i]] != totals[reasons[j]] {
				return totals[reasons[i]] > totals[reasons[j]]
			}
			return reasons[i] < reasons[j]
		})
		fmt.Println("\nLifetime XP by source:")
		for _, r := range reasons {
			fmt.Printf("  %-30s %d\n", r, totals[r])
		}

		events, err := repo.Recent(ctx, 15)
		if err != nil {
			return err
		}
		fmt.Println("\nRecent awards:")
		for _, e := range events {
			fmt.Printf("  %s  +%-4d %s\n", e.At.Local().Format("Jan 02 15:04"), e.Amount, e.Reason)
		}
		return nil
	},
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
