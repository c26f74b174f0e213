// Package studysession keeps per-item answer bookkeeping for the study
// screens. The reward engine awards on every event it receives; deciding
// which interactions count as first-time events is the presentation side's
// job, and the Tracker centralizes that so every screen dedupes the same
// way. Answer state persists through a ProgressStore so the first-answer
// guarantee survives restarts.
package studysession

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Every N distinct talking points answered counts as a practice test with
// the cumulative tally.
const talkingPointMilestone = 10

// Sink receives deduplicated study events. *reward.Engine satisfies it.
type Sink interface {
	OnFlashcardReviewed(ctx context.Context) error
	OnQuestionAnswered(ctx context.Context, correct bool) error
	OnPracticeTestCompleted(ctx context.Context, correct, total int) error
	OnFullTestCompleted(ctx context.Context, correct, total int) error
	OnScenarioCompleted(ctx context.Context) error
	OnCategoryStudied(ctx context.Context, category string) error
	RecordCategoryScore(ctx context.Context, percent int) error
}

// Tracker dedupes study interactions. Cards are keyed by term and category,
// questions, scenarios, and talking points by id; only the first interaction
// with each is forwarded. When every question in the bank has been answered,
// the run is reported as a full test exactly once.
type Tracker struct {
	id    string
	sink  Sink
	store ProgressStore
	log   *zap.Logger

	totalQuestions int
	cardsSeen      map[string]bool
	answers        map[int]string
	correct        map[int]bool
	scenariosSeen  map[int]bool
	talkingPoints  map[int]TalkingPointAnswer
	fullReported   bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithProgressStore makes answer state persistent. Call Restore after
// construction to hydrate from it.
func WithProgressStore(s ProgressStore) Option {
	return func(t *Tracker) { t.store = s }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// NewTracker creates a Tracker for a question bank of the given size.
func NewTracker(sink Sink, totalQuestions int, opts ...Option) *Tracker {
	t := &Tracker{
		id:             uuid.New().String(),
		sink:           sink,
		log:            zap.NewNop(),
		totalQuestions: totalQuestions,
		cardsSeen:      map[string]bool{},
		answers:        map[int]string{},
		correct:        map[int]bool{},
		scenariosSeen:  map[int]bool{},
		talkingPoints:  map[int]TalkingPointAnswer{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the session identifier.
func (t *Tracker) ID() string {
	return t.id
}

// Restore hydrates answer state from the progress store. Already-answered
// items will be treated as repeats, not first answers, so nothing is
// re-forwarded to the sink. Missing or corrupt stored state starts empty;
// Restore never fails because of persistence problems.
func (t *Tracker) Restore(ctx context.Context) {
	if t.store == nil {
		return
	}
	p, err := t.store.LoadProgress(ctx)
	if err != nil {
		t.log.Warn("discarding stored study progress", zap.Error(err))
		return
	}
	if p == nil {
		return
	}

	for _, key := range p.CardsSeen {
		t.cardsSeen[key] = true
	}
	for id, a := range p.Answers {
		t.answers[id] = a.Choice
		t.correct[id] = a.Correct
	}
	for _, id := range p.ScenariosSeen {
		t.scenariosSeen[id] = true
	}
	for id, a := range p.TalkingPoints {
		t.talkingPoints[id] = a
	}
	t.fullReported = p.FullTestReported
}

// FlashcardRevealed records a card flip. The first reveal of each distinct
// card reports a review and marks its category studied; repeats are ignored.
func (t *Tracker) FlashcardRevealed(ctx context.Context, term, category string) error {
	key := term + "|" + category
	if t.cardsSeen[key] {
		return nil
	}
	t.cardsSeen[key] = true
	t.saveProgress(ctx)

	if err := t.sink.OnFlashcardReviewed(ctx); err != nil {
		return err
	}
	return t.sink.OnCategoryStudied(ctx, category)
}

// QuestionAnswered records the first answer to a question. Later answers to
// the same question are ignored and reported as first=false. When the last
// unanswered question in the bank is answered, the whole run is additionally
// reported as a completed full test.
func (t *Tracker) QuestionAnswered(ctx context.Context, questionID int, choice string, isCorrect bool) (first bool, err error) {
	if _, answered := t.answers[questionID]; answered {
		return false, nil
	}
	t.answers[questionID] = choice
	t.correct[questionID] = isCorrect
	t.saveProgress(ctx)

	if err := t.sink.OnQuestionAnswered(ctx, isCorrect); err != nil {
		return true, err
	}

	if t.totalQuestions > 0 && len(t.answers) == t.totalQuestions && !t.fullReported {
		t.fullReported = true
		t.saveProgress(ctx)
		if err := t.sink.OnFullTestCompleted(ctx, t.CorrectCount(), t.totalQuestions); err != nil {
			return true, err
		}
	}
	return true, nil
}

// ScenarioAnswered records the first answer to a scenario.
func (t *Tracker) ScenarioAnswered(ctx context.Context, scenarioID int) (first bool, err error) {
	if t.scenariosSeen[scenarioID] {
		return false, nil
	}
	t.scenariosSeen[scenarioID] = true
	t.saveProgress(ctx)
	return true, t.sink.OnScenarioCompleted(ctx)
}

// TalkingPointAnswered records the first answer to a true/false statement.
// Every tenth distinct answer reports the cumulative tally as a completed
// practice test, the same cadence as the question milestone. Because the
// answer map is persisted, a restart can never replay a milestone.
func (t *Tracker) TalkingPointAnswered(ctx context.Context, pointID int, answer, isCorrect bool) (first bool, err error) {
	if _, done := t.talkingPoints[pointID]; done {
		return false, nil
	}
	t.talkingPoints[pointID] = TalkingPointAnswer{Answer: answer, Correct: isCorrect}
	t.saveProgress(ctx)

	if len(t.talkingPoints)%talkingPointMilestone == 0 {
		correct := 0
		for _, a := range t.talkingPoints {
			if a.Correct {
				correct++
			}
		}
		if err := t.sink.OnPracticeTestCompleted(ctx, correct, len(t.talkingPoints)); err != nil {
			return true, err
		}
	}
	return true, nil
}

// ReportCategoryScore converts a category drill's running tally into a
// percentage and records it. A drill with no answers yet reports nothing.
func (t *Tracker) ReportCategoryScore(ctx context.Context, correct, answered int) error {
	if answered == 0 {
		return nil
	}
	if correct < 0 || correct > answered {
		return fmt.Errorf("category score: correct %d out of range [0,%d]", correct, answered)
	}
	percent := int(float64(correct)/float64(answered)*100 + 0.5)
	return t.sink.RecordCategoryScore(ctx, percent)
}

// Answer returns the recorded choice for a question, if any.
func (t *Tracker) Answer(questionID int) (choice string, answered bool) {
	choice, answered = t.answers[questionID]
	return choice, answered
}

// ScenarioDone reports whether a scenario has been answered.
func (t *Tracker) ScenarioDone(scenarioID int) bool {
	return t.scenariosSeen[scenarioID]
}

// TalkingPointDone returns the recorded answer for a statement, if any.
func (t *Tracker) TalkingPointDone(pointID int) (answer bool, answered bool) {
	a, answered := t.talkingPoints[pointID]
	return a.Answer, answered
}

// AnsweredCount returns how many distinct questions have been answered.
func (t *Tracker) AnsweredCount() int {
	return len(t.answers)
}

// CorrectCount returns how many distinct questions were answered correctly.
func (t *Tracker) CorrectCount() int {
	n := 0
	for _, ok := range t.correct {
		if ok {
			n++
		}
	}
	return n
}

// saveProgress writes the full answer state. Persistence failures are
// logged, never surfaced: losing a save risks one duplicate award on the
// next run, which is preferable to failing the study action.
func (t *Tracker) saveProgress(ctx context.Context) {
	if t.store == nil {
		return
	}

	p := &Progress{
		Answers:          make(map[int]QuestionAnswer, len(t.answers)),
		CardsSeen:        make([]string, 0, len(t.cardsSeen)),
		ScenariosSeen:    make([]int, 0, len(t.scenariosSeen)),
		FullTestReported: t.fullReported,
		TalkingPoints:    make(map[int]TalkingPointAnswer, len(t.talkingPoints)),
	}
	for id, choice := range t.answers {
		p.Answers[id] = QuestionAnswer{Choice: choice, Correct: t.correct[id]}
	}
	for key := range t.cardsSeen {
		p.CardsSeen = append(p.CardsSeen, key)
	}
	for id := range t.scenariosSeen {
		p.ScenariosSeen = append(p.ScenariosSeen, id)
	}
	for id, a := range t.talkingPoints {
		p.TalkingPoints[id] = a
	}

	if err := t.store.SaveProgress(ctx, p); err != nil {
		t.log.Warn("persist study progress", zap.Error(err))
	}
}
