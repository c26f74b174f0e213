package studysession

import (
	"context"
	"errors"
)

// ErrCorruptProgress marks stored answer state that could not be decoded.
// The tracker recovers by starting from empty state; it is never surfaced
// as a user-facing failure.
var ErrCorruptProgress = errors.New("stored study progress is corrupt")

// QuestionAnswer is the recorded first answer to a quiz question.
type QuestionAnswer struct {
	Choice  string `json:"choice"`
	Correct bool   `json:"correct"`
}

// TalkingPointAnswer is the recorded first answer to a true/false statement.
type TalkingPointAnswer struct {
	Answer  bool `json:"answer"`
	Correct bool `json:"correct"`
}

// Progress is the persisted per-item answer state. It is what makes the
// tracker's first-answer-only guarantees hold across restarts: without it a
// new process would re-forward the same scenarios, cards, and questions to
// the reward engine.
type Progress struct {
	Answers          map[int]QuestionAnswer     `json:"answers"`
	CardsSeen        []string                   `json:"cardsSeen"`
	ScenariosSeen    []int                      `json:"scenariosSeen"`
	FullTestReported bool                       `json:"fullTestReported"`
	TalkingPoints    map[int]TalkingPointAnswer `json:"talkingPoints"`
}

// ProgressStore persists answer state across runs. Load returns (nil, nil)
// when nothing has been saved yet and wraps ErrCorruptProgress when the
// stored record cannot be decoded.
type ProgressStore interface {
	LoadProgress(ctx context.Context) (*Progress, error)
	SaveProgress(ctx context.Context, p *Progress) error
}
