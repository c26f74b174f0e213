package studysession

import (
	"context"
	"encoding/json"
	"testing"
)

// recordingSink counts forwarded events.
type recordingSink struct {
	flashcards      int
	questions       int
	questionsRight  int
	practiceTests   int
	practiceCorrect int
	practiceTotal   int
	fullTests       int
	fullCorrect     int
	fullTotal       int
	scenarios       int
	categories      []string
	scores          []int
}

func (r *recordingSink) OnFlashcardReviewed(context.Context) error { r.flashcards++; return nil }

func (r *recordingSink) OnQuestionAnswered(_ context.Context, correct bool) error {
	r.questions++
	if correct {
		r.questionsRight++
	}
	return nil
}

func (r *recordingSink) OnPracticeTestCompleted(_ context.Context, correct, total int) error {
	r.practiceTests++
	r.practiceCorrect = correct
	r.practiceTotal = total
	return nil
}

func (r *recordingSink) OnFullTestCompleted(_ context.Context, correct, total int) error {
	r.fullTests++
	r.fullCorrect = correct
	r.fullTotal = total
	return nil
}

func (r *recordingSink) OnScenarioCompleted(context.Context) error { r.scenarios++; return nil }

func (r *recordingSink) OnCategoryStudied(_ context.Context, category string) error {
	r.categories = append(r.categories, category)
	return nil
}

func (r *recordingSink) RecordCategoryScore(_ context.Context, percent int) error {
	r.scores = append(r.scores, percent)
	return nil
}

func TestFlashcardDedup(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10)
	ctx := context.Background()

	cards := []struct{ term, category string }{
		{"H0043", "Billing"},
		{"H0043", "Billing"}, // repeat flip
		{"H2023", "Billing"},
		{"Risk Factor", "Eligibility"},
		{"H0043", "Billing"}, // repeat again
	}
	for _, c := range cards {
		if err := tr.FlashcardRevealed(ctx, c.term, c.category); err != nil {
			t.Fatalf("reveal %s: %v", c.term, err)
		}
	}

	if sink.flashcards != 3 {
		t.Errorf("flashcard reviews = %d, want 3", sink.flashcards)
	}
	// Category studied fires per unique card, not per unique category; the
	// engine dedupes the daily studied-set itself.
	if len(sink.categories) != 3 {
		t.Errorf("category events = %d, want 3", len(sink.categories))
	}
}

func TestSameTermDifferentCategoryIsDistinct(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10)
	ctx := context.Background()

	tr.FlashcardRevealed(ctx, "Authorization", "Billing")
	tr.FlashcardRevealed(ctx, "Authorization", "Documentation")

	if sink.flashcards != 2 {
		t.Errorf("flashcard reviews = %d, want 2", sink.flashcards)
	}
}

func TestQuestionFirstAnswerOnly(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 3)
	ctx := context.Background()

	first, err := tr.QuestionAnswered(ctx, 1, "b", true)
	if err != nil || !first {
		t.Fatalf("first answer: first=%v err=%v", first, err)
	}
	first, err = tr.QuestionAnswered(ctx, 1, "c", false)
	if err != nil {
		t.Fatalf("repeat answer: %v", err)
	}
	if first {
		t.Error("repeat answer reported as first")
	}

	if sink.questions != 1 {
		t.Errorf("question events = %d, want 1", sink.questions)
	}
	if choice, ok := tr.Answer(1); !ok || choice != "b" {
		t.Errorf("recorded answer = %q (%v), want %q", choice, ok, "b")
	}
}

func TestFullTestReportedOnceWhenBankComplete(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 3)
	ctx := context.Background()

	tr.QuestionAnswered(ctx, 1, "a", true)
	tr.QuestionAnswered(ctx, 2, "b", false)
	if sink.fullTests != 0 {
		t.Fatalf("full test reported before bank complete")
	}

	tr.QuestionAnswered(ctx, 3, "c", true)
	if sink.fullTests != 1 {
		t.Fatalf("full tests = %d, want 1", sink.fullTests)
	}
	if sink.fullCorrect != 2 || sink.fullTotal != 3 {
		t.Errorf("full test score = %d/%d, want 2/3", sink.fullCorrect, sink.fullTotal)
	}

	// Repeat answers never re-trigger it.
	tr.QuestionAnswered(ctx, 3, "a", false)
	if sink.fullTests != 1 {
		t.Errorf("full tests after repeat = %d, want 1", sink.fullTests)
	}
}

func TestScenarioDedup(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10)
	ctx := context.Background()

	for _, id := range []int{1, 2, 1, 1, 2} {
		if _, err := tr.ScenarioAnswered(ctx, id); err != nil {
			t.Fatalf("scenario %d: %v", id, err)
		}
	}
	if sink.scenarios != 2 {
		t.Errorf("scenario events = %d, want 2", sink.scenarios)
	}
	if !tr.ScenarioDone(1) || !tr.ScenarioDone(2) || tr.ScenarioDone(3) {
		t.Error("scenario done flags wrong")
	}
}

func TestReportCategoryScore(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		answered int
		want     []int
	}{
		{"no answers reports nothing", 0, 0, nil},
		{"two of three rounds to 67", 2, 3, []int{67}},
		{"perfect", 4, 4, []int{100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			tr := NewTracker(sink, 10)
			if err := tr.ReportCategoryScore(context.Background(), tt.correct, tt.answered); err != nil {
				t.Fatalf("report: %v", err)
			}
			if len(sink.scores) != len(tt.want) {
				t.Fatalf("scores = %v, want %v", sink.scores, tt.want)
			}
			for i := range tt.want {
				if sink.scores[i] != tt.want[i] {
					t.Errorf("scores = %v, want %v", sink.scores, tt.want)
				}
			}
		})
	}
}

func TestReportCategoryScoreRejectsBadTally(t *testing.T) {
	tr := NewTracker(&recordingSink{}, 10)
	if err := tr.ReportCategoryScore(context.Background(), 5, 3); err == nil {
		t.Fatal("expected error for correct > answered")
	}
}

// memProgress is an in-test ProgressStore that round-trips through JSON,
// like the real repos.
type memProgress struct {
	data []byte
}

func (m *memProgress) LoadProgress(context.Context) (*Progress, error) {
	if m.data == nil {
		return nil, nil
	}
	var p Progress
	if err := json.Unmarshal(m.data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *memProgress) SaveProgress(_ context.Context, p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func TestAnsweredItemsNotReforwardedAfterRestart(t *testing.T) {
	ctx := context.Background()
	progress := &memProgress{}

	sink := &recordingSink{}
	tr := NewTracker(sink, 10, WithProgressStore(progress))
	tr.Restore(ctx)

	tr.FlashcardRevealed(ctx, "PRISM", "Program Basics")
	tr.QuestionAnswered(ctx, 1, "b", true)
	tr.ScenarioAnswered(ctx, 7)
	tr.TalkingPointAnswered(ctx, 3, true, true)

	// A new tracker over the same store simulates a restart.
	sink2 := &recordingSink{}
	tr2 := NewTracker(sink2, 10, WithProgressStore(progress))
	tr2.Restore(ctx)

	tr2.FlashcardRevealed(ctx, "PRISM", "Program Basics")
	if first, _ := tr2.QuestionAnswered(ctx, 1, "c", false); first {
		t.Error("question re-reported as first after restart")
	}
	if first, _ := tr2.ScenarioAnswered(ctx, 7); first {
		t.Error("scenario re-reported as first after restart")
	}
	if first, _ := tr2.TalkingPointAnswered(ctx, 3, false, false); first {
		t.Error("talking point re-reported as first after restart")
	}

	if sink2.flashcards != 0 || sink2.questions != 0 || sink2.scenarios != 0 {
		t.Errorf("restart re-forwarded events: flashcards=%d questions=%d scenarios=%d, want 0,0,0",
			sink2.flashcards, sink2.questions, sink2.scenarios)
	}
	if choice, ok := tr2.Answer(1); !ok || choice != "b" {
		t.Errorf("restored answer = %q (%v), want %q", choice, ok, "b")
	}
}

func TestTalkingPointMilestoneEveryTen(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 0)
	ctx := context.Background()

	// 9 answers: no milestone yet. Ids 1..9, 7 correct.
	for id := 1; id <= 9; id++ {
		if _, err := tr.TalkingPointAnswered(ctx, id, true, id <= 7); err != nil {
			t.Fatalf("answer %d: %v", id, err)
		}
	}
	if sink.practiceTests != 0 {
		t.Fatalf("practice tests before tenth answer = %d, want 0", sink.practiceTests)
	}

	// Repeat answers don't advance the count.
	if first, _ := tr.TalkingPointAnswered(ctx, 9, false, false); first {
		t.Error("repeat answer reported as first")
	}
	if sink.practiceTests != 0 {
		t.Fatalf("repeat answer triggered a milestone")
	}

	if _, err := tr.TalkingPointAnswered(ctx, 10, true, true); err != nil {
		t.Fatalf("answer 10: %v", err)
	}
	if sink.practiceTests != 1 {
		t.Fatalf("practice tests = %d, want 1", sink.practiceTests)
	}
	if sink.practiceCorrect != 8 || sink.practiceTotal != 10 {
		t.Errorf("milestone tally = %d/%d, want 8/10", sink.practiceCorrect, sink.practiceTotal)
	}
}

func TestTalkingPointMilestoneNotReplayedAfterRestart(t *testing.T) {
	ctx := context.Background()
	progress := &memProgress{}

	sink := &recordingSink{}
	tr := NewTracker(sink, 0, WithProgressStore(progress))
	tr.Restore(ctx)
	for id := 1; id <= 10; id++ {
		tr.TalkingPointAnswered(ctx, id, true, true)
	}
	if sink.practiceTests != 1 {
		t.Fatalf("practice tests = %d, want 1", sink.practiceTests)
	}

	sink2 := &recordingSink{}
	tr2 := NewTracker(sink2, 0, WithProgressStore(progress))
	tr2.Restore(ctx)

	// The restored count sits at the milestone; only ten NEW answers may
	// produce the next one.
	for id := 11; id <= 19; id++ {
		tr2.TalkingPointAnswered(ctx, id, true, false)
	}
	if sink2.practiceTests != 0 {
		t.Fatalf("milestone replayed after restart: practice tests = %d, want 0", sink2.practiceTests)
	}
	tr2.TalkingPointAnswered(ctx, 20, true, false)
	if sink2.practiceTests != 1 {
		t.Fatalf("practice tests = %d, want 1", sink2.practiceTests)
	}
	if sink2.practiceCorrect != 10 || sink2.practiceTotal != 20 {
		t.Errorf("milestone tally = %d/%d, want 10/20", sink2.practiceCorrect, sink2.practiceTotal)
	}
}

// failingProgress always errors, standing in for a corrupt stored record.
type failingProgress struct{}

func (failingProgress) LoadProgress(context.Context) (*Progress, error) {
	return nil, ErrCorruptProgress
}

func (failingProgress) SaveProgress(context.Context, *Progress) error {
	return ErrCorruptProgress
}

func TestRestoreToleratesCorruptProgress(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10, WithProgressStore(failingProgress{}))
	ctx := context.Background()

	tr.Restore(ctx)

	// The tracker starts empty and study actions still work.
	if err := tr.FlashcardRevealed(ctx, "IPS", "Employment Services"); err != nil {
		t.Fatalf("reveal after corrupt restore: %v", err)
	}
	if sink.flashcards != 1 {
		t.Errorf("flashcard reviews = %d, want 1", sink.flashcards)
	}
}
