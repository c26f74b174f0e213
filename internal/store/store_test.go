package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fcsprep/fcsprep/internal/reward"
	"github.com/fcsprep/fcsprep/internal/studysession"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"reward_ledger", "study_progress", "xp_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestLedgerLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	l, err := s.LedgerRepo().Load(context.Background())
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if l != nil {
		t.Fatal("expected nil ledger when none saved")
	}
}

func TestLedgerSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.LedgerRepo()
	ctx := context.Background()

	when := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	l := reward.NewLedger()
	l.TotalXP = 340
	l.DailyStreak = 4
	l.LastStudyDate = &when
	l.Statistics.FlashcardsReviewed = 12

	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil ledger")
	}
	if got.TotalXP != 340 {
		t.Errorf("totalXP = %d, want 340", got.TotalXP)
	}
	if got.DailyStreak != 4 {
		t.Errorf("dailyStreak = %d, want 4", got.DailyStreak)
	}
	if got.LastStudyDate == nil || !got.LastStudyDate.Equal(when) {
		t.Errorf("lastStudyDate = %v, want %v", got.LastStudyDate, when)
	}
	if got.Statistics.FlashcardsReviewed != 12 {
		t.Errorf("flashcardsReviewed = %d, want 12", got.Statistics.FlashcardsReviewed)
	}
}

func TestLedgerSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.LedgerRepo()
	ctx := context.Background()

	l := reward.NewLedger()
	for _, xp := range []int{10, 60, 225} {
		l.TotalXP = xp
		if err := repo.Save(ctx, l); err != nil {
			t.Fatalf("save xp=%d: %v", xp, err)
		}
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalXP != 225 {
		t.Errorf("totalXP = %d, want 225", got.TotalXP)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM reward_ledger").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("ledger rows = %d, want 1", count)
	}
}

func TestLedgerLoadCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().ExecContext(ctx,
		`INSERT INTO reward_ledger (id, data, updated_at) VALUES (1, 'not json{', ?)`,
		time.Now().UTC())
	if err != nil {
		t.Fatalf("insert garbage: %v", err)
	}

	_, err = s.LedgerRepo().Load(ctx)
	if !errors.Is(err, reward.ErrCorruptLedger) {
		t.Fatalf("err = %v, want reward.ErrCorruptLedger", err)
	}
}

func TestXPEventAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.XPEventRepo()
	if err != nil {
		t.Fatalf("xp event repo: %v", err)
	}
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	reasons := []string{"Flashcard reviewed", "Practice test completed", "Daily login"}
	for i, reason := range reasons {
		err := repo.AppendXPEvent(ctx, reward.XPEvent{
			Amount:    (i + 1) * 5,
			Reason:    reason,
			SessionID: "s-1",
			TotalXP:   (i + 1) * 5,
			At:        base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	// Newest first, sequences strictly decreasing.
	if events[0].Reason != "Daily login" {
		t.Errorf("newest reason = %q, want %q", events[0].Reason, "Daily login")
	}
	for i := 1; i < len(events); i++ {
		if events[i].Sequence >= events[i-1].Sequence {
			t.Errorf("sequence not decreasing at %d: %d >= %d",
				i, events[i].Sequence, events[i-1].Sequence)
		}
	}

	events, err = repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events with limit 2", len(events))
	}
}

func TestXPEventAggregates(t *testing.T) {
	s := openTestStore(t)
	repo, err := s.XPEventRepo()
	if err != nil {
		t.Fatalf("xp event repo: %v", err)
	}
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	fixtures := []struct {
		amount int
		reason string
		at     time.Time
	}{
		{5, "Flashcard reviewed", base},
		{5, "Flashcard reviewed", base.Add(time.Minute)},
		{50, "Practice test completed", base.Add(26 * time.Hour)},
	}
	for i, f := range fixtures {
		err := repo.AppendXPEvent(ctx, reward.XPEvent{
			Amount: f.amount, Reason: f.reason, SessionID: "s-1", At: f.at,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	earned, err := repo.EarnedSince(ctx, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("earned since: %v", err)
	}
	if earned != 50 {
		t.Errorf("earned since = %d, want 50", earned)
	}

	totals, err := repo.TotalsByReason(ctx)
	if err != nil {
		t.Fatalf("totals by reason: %v", err)
	}
	if totals["Flashcard reviewed"] != 10 {
		t.Errorf("flashcard total = %d, want 10", totals["Flashcard reviewed"])
	}
	if totals["Practice test completed"] != 50 {
		t.Errorf("test total = %d, want 50", totals["Practice test completed"])
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ledger := reward.NewLedger()
	ledger.TotalXP = 250
	if err := s.LedgerRepo().Save(ctx, ledger); err != nil {
		t.Fatalf("save ledger: %v", err)
	}

	repo, err := s.XPEventRepo()
	if err != nil {
		t.Fatalf("event repo: %v", err)
	}
	err = repo.AppendXPEvent(ctx, reward.XPEvent{
		Amount: 10, Reason: "Daily login", SessionID: "s", TotalXP: 10, At: time.Now(),
	})
	if err != nil {
		t.Fatalf("append event: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	l, err := s.LedgerRepo().Load(ctx)
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if l != nil {
		t.Error("expected nil ledger after reset")
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent after reset: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after reset, want 0", len(events))
	}

	// The sequence counter restarts too.
	seq, err := repo.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next sequence: %v", err)
	}
	if seq != 1 {
		t.Errorf("sequence after reset = %d, want 1", seq)
	}
}

func TestResetOnFreshStore(t *testing.T) {
	s := openTestStore(t)
	if err := s.Reset(); err != nil {
		t.Fatalf("reset fresh store: %v", err)
	}
}

func TestProgressLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	p, err := s.ProgressRepo().LoadProgress(context.Background())
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil progress when none saved")
	}
}

func TestProgressSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	saved := &studysession.Progress{
		Answers: map[int]studysession.QuestionAnswer{
			1: {Choice: "b", Correct: true},
			4: {Choice: "a", Correct: false},
		},
		CardsSeen:        []string{"PRISM|Program Basics"},
		ScenariosSeen:    []int{7},
		FullTestReported: true,
		TalkingPoints: map[int]studysession.TalkingPointAnswer{
			3: {Answer: true, Correct: true},
		},
	}
	if err := repo.SaveProgress(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadProgress(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Answers[1].Choice != "b" || !got.Answers[1].Correct {
		t.Errorf("answer 1 = %+v, want {b true}", got.Answers[1])
	}
	if len(got.CardsSeen) != 1 || got.CardsSeen[0] != "PRISM|Program Basics" {
		t.Errorf("cards seen = %v", got.CardsSeen)
	}
	if len(got.ScenariosSeen) != 1 || got.ScenariosSeen[0] != 7 {
		t.Errorf("scenarios seen = %v", got.ScenariosSeen)
	}
	if !got.FullTestReported {
		t.Error("full test flag lost")
	}
	if got.TalkingPoints[3] != (studysession.TalkingPointAnswer{Answer: true, Correct: true}) {
		t.Errorf("talking point 3 = %+v", got.TalkingPoints[3])
	}
}

func TestProgressLoadCorrupt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		`INSERT INTO study_progress (id, data, updated_at) VALUES (1, 'not json', ?)`,
		time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	_, err = s.ProgressRepo().LoadProgress(ctx)
	if !errors.Is(err, studysession.ErrCorruptProgress) {
		t.Fatalf("err = %v, want ErrCorruptProgress", err)
	}
}

func TestResetWipesProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.ProgressRepo().SaveProgress(ctx, &studysession.Progress{
		ScenariosSeen: []int{1, 2},
	})
	if err != nil {
		t.Fatalf("save progress: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	p, err := s.ProgressRepo().LoadProgress(ctx)
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if p != nil {
		t.Error("expected nil progress after reset")
	}
}
