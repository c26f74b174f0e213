package cmd

import (
	"github.com/fcsprep/fcsprep/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fcsprep",
	Short: "Terminal study tool for the WA Foundational Community Supports exam",
	Long:  "FCS Prep — flashcards, practice questions, and scenarios for the Washington Foundational Community Supports provider exam, with XP, streaks, and achievements to keep you coming back.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FCSPREP_DB env var)")
	rootCmd.Flags().String("content-dir", "", "Directory with study content JSON files (overrides the embedded dataset)")
	rootCmd.Flags().Bool("ephemeral", false, "Keep all progress in memory; nothing is written to disk")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then FCSPREP_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
