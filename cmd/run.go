package cmd

import (
	"fmt"
	"os"

	"github.com/fcsprep/fcsprep/internal/app"
	"github.com/fcsprep/fcsprep/internal/config"
	"github.com/fcsprep/fcsprep/internal/content"
	"github.com/fcsprep/fcsprep/internal/logger"
	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/screens/history"
	"github.com/fcsprep/fcsprep/internal/store"
	"github.com/fcsprep/fcsprep/internal/studysession"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp loads config and content, opens the store, builds the reward
// engine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("content-dir"); dir != "" {
		cfg.ContentDir = dir
	}

	set, err := content.Load(cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	log := newLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	var (
		ledgerStore reward.Store
		eventLog    reward.EventLog
		events      history.EventSource
		progress    studysession.ProgressStore
	)
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		mem := store.NewMemory()
		ledgerStore, eventLog, events, progress = mem, mem, mem, mem
	} else {
		dbPath, err := resolveDBPath(cmd, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo, err := st.XPEventRepo()
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		ledgerStore, eventLog, events, progress = st.LedgerRepo(), repo, repo, st.ProgressRepo()
	}

	categories := cfg.Categories
	if len(categories) == 0 {
		categories = set.Categories()
	}

	feed := &reward.Feed{}
	engine := reward.New(ledgerStore,
		reward.WithConfig(reward.Config{
			Categories:     categories,
			DeckSize:       len(set.Terms),
			TotalScenarios: len(set.Scenarios),
		}),
		reward.WithNotifier(feed),
		reward.WithEventLog(eventLog),
		reward.WithLogger(log),
	)
	engine.Start(ctx)

	tracker := studysession.NewTracker(engine, len(set.Questions),
		studysession.WithProgressStore(progress),
		studysession.WithLogger(log),
	)
	tracker.Restore(ctx)

	return app.Run(set, tracker, engine, feed, events)
}

// newLogger builds the file logger, falling back to a nop logger when the
// data directory is unavailable. The TUI owns the terminal, so logs never
// go to stderr.
func newLogger(level string) *zap.Logger {
	dataDir, err := store.DefaultDataDir()
	if err != nil {
		return zap.NewNop()
	}
	log, err := logger.New(dataDir, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		return zap.NewNop()
	}
	return log
}
