package reward

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Per-event XP awards.
const (
	flashcardXP       = 5
	scenarioXP        = 20
	practiceTestXP    = 50
	practiceHighBonus = 25  // practice score >= 80
	fullTestXP        = 100
	fullTestHighBonus = 50  // full test score >= 90
	perfectScoreBonus = 150 // either test kind at exactly 100
	questionMilestone = 10  // every N answered questions counts as a practice test
)

// ErrInvalidArgument reports event arguments that indicate a caller bug,
// such as negative counts or a zero total. These are rejected loudly rather
// than recovered.
var ErrInvalidArgument = errors.New("invalid event argument")

// Engine converts study events into XP awards, level transitions, streak
// accounting, achievement unlocks, and daily-challenge completion. All
// mutating operations are serialized by an internal mutex so multiple UI
// components may report events concurrently.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	store  Store
	events EventLog
	notify Notifier
	log    *zap.Logger
	now    func() time.Time
	rng    *rand.Rand

	ledger    *Ledger
	session   *SessionState
	daily     *DailyState
	lastTick  time.Time // last study-time accrual point
	sessionID string
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the content-derived configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg.withDefaults() }
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// WithEventLog sets the append-only XP award log.
func WithEventLog(l EventLog) Option {
	return func(e *Engine) { e.events = l }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock overrides the time source. Tests use this to simulate day
// rollovers without sleeping.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand overrides the randomness source for challenge generation.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New creates an Engine bound to a persistence store. Call Start before
// reporting events.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		cfg:       Config{}.withDefaults(),
		store:     store,
		notify:    NopNotifier{},
		log:       zap.NewNop(),
		now:       time.Now,
		sessionID: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.now().UnixNano()))
	}
	return e
}

// Start loads persisted state, performs the day-rollover check, and updates
// the streak. Missing or corrupt stored state falls back to defaults; Start
// never fails because of persistence problems.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.session = newSessionState(now)
	e.daily = newDailyState()
	e.lastTick = now

	ledger, err := e.store.Load(ctx)
	if err != nil {
		e.log.Warn("discarding stored reward ledger", zap.Error(err))
		ledger = nil
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	e.ledger = ledger

	e.rollDayLocked(ctx)
	e.saveLocked(ctx)
}

// OnFlashcardReviewed records one reviewed flashcard. The caller is
// responsible for reporting each distinct card at most once.
func (e *Engine) OnFlashcardReviewed(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)

	e.session.FlashcardsReviewed++
	e.daily.FlashcardsReviewed++
	e.ledger.Statistics.FlashcardsReviewed++
	if e.daily.FlashcardsReviewed >= e.cfg.DeckSize {
		e.daily.AllFlashcardsReviewed = true
	}

	e.awardLocked(ctx, flashcardXP, "Flashcard Reviewed")
	e.checkAchievementsLocked(ctx)
	e.checkChallengesLocked(ctx)
	e.saveLocked(ctx)
	return nil
}

// OnQuestionAnswered records a single answered quiz question against the
// engine-owned milestone state. Every tenth distinct answer triggers a
// practice-test completion with the cumulative counts; because the milestone
// high-water mark is persisted, reloads can never re-award a milestone.
func (e *Engine) OnQuestionAnswered(ctx context.Context, correct bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)

	ms := &e.ledger.Milestones
	ms.QuestionsAnswered++
	if correct {
		ms.QuestionsCorrect++
	}
	if ms.QuestionsAnswered%questionMilestone == 0 && ms.QuestionsAnswered > ms.LastAwarded {
		ms.LastAwarded = ms.QuestionsAnswered
		e.completePracticeTestLocked(ctx, ms.QuestionsCorrect, ms.QuestionsAnswered)
	}

	e.saveLocked(ctx)
	return nil
}

// OnPracticeTestCompleted records a finished practice test.
func (e *Engine) OnPracticeTestCompleted(ctx context.Context, correct, total int) error {
	if err := validateScore(correct, total); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)
	e.completePracticeTestLocked(ctx, correct, total)
	e.saveLocked(ctx)
	return nil
}

// OnFullTestCompleted records a finished full-bank test. Deciding whether a
// run counts as a full test is the caller's classification, not the engine's.
func (e *Engine) OnFullTestCompleted(ctx context.Context, correct, total int) error {
	if err := validateScore(correct, total); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)

	e.ledger.Statistics.FullTestsCompleted++
	score := scorePercent(correct, total)
	e.session.LastTestScore = score

	xp := fullTestXP
	if score >= 90 {
		xp += fullTestHighBonus
	}
	if score == 100 {
		xp += perfectScoreBonus
		e.ledger.Statistics.PerfectScores++
	}

	e.awardLocked(ctx, xp, "Full Test Completed")
	e.checkAchievementsLocked(ctx)
	e.checkChallengesLocked(ctx)
	e.saveLocked(ctx)
	return nil
}

// OnScenarioCompleted records one completed scenario exercise. The caller
// must report each distinct scenario at most once.
func (e *Engine) OnScenarioCompleted(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)

	e.daily.ScenariosCompleted++
	e.ledger.Statistics.ScenariosCompleted++

	e.awardLocked(ctx, scenarioXP, "Scenario Completed")
	e.checkAchievementsLocked(ctx)
	e.checkChallengesLocked(ctx)
	e.saveLocked(ctx)
	return nil
}

// OnCategoryStudied records that a category was touched today. Idempotent
// per day for the studied-set; the lifetime per-category counter always
// increments. Only challenges are re-evaluated, matching the fact that no
// achievement reads the studied-category state.
func (e *Engine) OnCategoryStudied(ctx context.Context, category string) error {
	if category == "" {
		return fmt.Errorf("%w: empty category", ErrInvalidArgument)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)

	e.daily.CategoriesStudied[category] = true
	if e.ledger.Statistics.CategoriesStudied == nil {
		e.ledger.Statistics.CategoriesStudied = map[string]int{}
	}
	e.ledger.Statistics.CategoriesStudied[category]++

	if len(e.cfg.Categories) > 0 {
		all := true
		for _, c := range e.cfg.Categories {
			if !e.daily.CategoriesStudied[c] {
				all = false
				break
			}
		}
		if all {
			e.daily.AllCategoriesReviewed = true
		}
	}

	e.checkChallengesLocked(ctx)
	e.saveLocked(ctx)
	return nil
}

// RecordCategoryScore updates the session's best-known score for a single
// category drill, feeding the Category Specialist achievement.
func (e *Engine) RecordCategoryScore(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: category score %d out of range", ErrInvalidArgument, percent)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled() {
		return nil
	}
	e.rollDayLocked(ctx)

	e.session.LastCategoryScore = percent
	e.checkAchievementsLocked(ctx)
	e.saveLocked(ctx)
	return nil
}

// ApplySettings merges a settings patch and persists. Settings changes are
// applied even while rewards are disabled, since this is how they get
// re-enabled.
func (e *Engine) ApplySettings(ctx context.Context, patch SettingsPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Settings.apply(patch)
	e.saveLocked(ctx)
}

// completePracticeTestLocked applies the practice-test scoring rules shared
// by the public event and the question-milestone path.
func (e *Engine) completePracticeTestLocked(ctx context.Context, correct, total int) {
	e.daily.TestsCompleted++
	e.ledger.Statistics.PracticeTestsCompleted++

	score := scorePercent(correct, total)
	e.session.LastTestScore = score
	if score > e.daily.HighScore {
		e.daily.HighScore = score
	}

	xp := practiceTestXP
	if score >= 80 {
		xp += practiceHighBonus
	}
	if score == 100 {
		xp += perfectScoreBonus
		e.ledger.Statistics.PerfectScores++
		e.daily.PerfectCategoryScore = true
	}

	e.awardLocked(ctx, xp, "Practice Test Completed")
	e.checkAchievementsLocked(ctx)
	e.checkChallengesLocked(ctx)
}

// awardLocked adds XP, emits notifications, and persists. A level-up is
// reported only when the new tier's level number exceeds the previous one.
func (e *Engine) awardLocked(ctx context.Context, amount int, reason string) {
	if !e.enabled() {
		return
	}

	prev := LevelFor(e.ledger.TotalXP)
	e.ledger.TotalXP += amount
	next := LevelFor(e.ledger.TotalXP)

	e.notify.Notify(Notification{Kind: NoteXP, Amount: amount, Reason: reason})
	if next.Level > prev.Level {
		e.notify.Notify(Notification{Kind: NoteLevelUp, Level: next})
	}

	if e.events != nil {
		err := e.events.AppendXPEvent(ctx, XPEvent{
			Amount:    amount,
			Reason:    reason,
			SessionID: e.sessionID,
			TotalXP:   e.ledger.TotalXP,
			At:        e.now(),
		})
		if err != nil {
			e.log.Warn("append xp event", zap.Error(err))
		}
	}

	e.saveLocked(ctx)
}

// checkAchievementsLocked evaluates the catalog in its fixed order and
// unlocks any newly satisfied achievements. Already-unlocked entries are
// never re-evaluated.
func (e *Engine) checkAchievementsLocked(ctx context.Context) {
	snap := e.snapshotLocked()
	for _, a := range Catalog {
		if e.ledger.HasAchievement(a.ID) {
			continue
		}
		if !a.Unlocked(snap) {
			continue
		}
		e.ledger.Achievements = append(e.ledger.Achievements, AchievementUnlock{
			ID:         a.ID,
			UnlockedAt: e.now(),
		})
		e.notify.Notify(Notification{Kind: NoteAchievement, Achievement: a})
		e.awardLocked(ctx, achievementXP, "Achievement: "+a.Name)
	}
}

// checkChallengesLocked accrues study time and completes any satisfied
// active challenges. Completed challenges are never re-evaluated.
func (e *Engine) checkChallengesLocked(ctx context.Context) {
	now := e.now()
	elapsed := now.Sub(e.lastTick)
	if elapsed > 0 {
		e.daily.StudyTime += elapsed
		e.ledger.Statistics.TotalStudyTimeMs += elapsed.Milliseconds()
	}
	e.lastTick = now

	snap := e.snapshotLocked()
	for i := range e.ledger.DailyChallenges {
		ch := &e.ledger.DailyChallenges[i]
		if ch.Completed {
			continue
		}
		tmpl, ok := challengeTemplateByID(ch.ID)
		if !ok || !tmpl.Done(snap) {
			continue
		}
		ch.Completed = true
		e.notify.Notify(Notification{Kind: NoteChallenge, Challenge: *ch})
		e.awardLocked(ctx, ch.XP, "Daily Challenge: "+ch.Description)
	}
}

// rollDayLocked detects a calendar-day change, resets day-scoped state,
// regenerates challenges, and runs the streak update. Same-day calls are
// no-ops, so it is safe to run at the top of every event.
func (e *Engine) rollDayLocked(ctx context.Context) {
	now := e.now()
	last := e.ledger.LastStudyDate

	if last != nil && sameDay(now, *last) {
		return
	}

	e.daily = newDailyState()
	e.ledger.DailyChallenges = generateChallenges(e.rng, e.cfg.Categories)

	out := nextStreak(now, last, e.ledger.DailyStreak)
	e.ledger.DailyStreak = out.streak
	t := now
	e.ledger.LastStudyDate = &t

	if out.advanced {
		e.awardLocked(ctx, LoginBonusXP, "Daily Login")
		if bonus := StreakBonus(out.streak); bonus > 0 {
			e.awardLocked(ctx, bonus, "Study Streak Bonus")
		}
	}
}

// RegenerateChallenges replaces the active challenge set immediately. The
// engine itself only regenerates on day rollover; this is exposed for tools
// and tests.
func (e *Engine) RegenerateChallenges(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.DailyChallenges = generateChallenges(e.rng, e.cfg.Categories)
	e.saveLocked(ctx)
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Ledger:  e.ledger,
		Session: e.session,
		Daily:   e.daily,
		Config:  e.cfg,
		Now:     e.now(),
	}
}

func (e *Engine) saveLocked(ctx context.Context) {
	if err := e.store.Save(ctx, e.ledger); err != nil {
		e.log.Warn("persist reward ledger", zap.Error(err))
	}
}

func (e *Engine) enabled() bool {
	return e.ledger.Settings.Enabled
}

func validateScore(correct, total int) error {
	if total <= 0 {
		return fmt.Errorf("%w: total %d must be positive", ErrInvalidArgument, total)
	}
	if correct < 0 || correct > total {
		return fmt.Errorf("%w: correct %d out of range [0,%d]", ErrInvalidArgument, correct, total)
	}
	return nil
}

func scorePercent(correct, total int) int {
	return int(float64(correct)/float64(total)*100 + 0.5)
}
