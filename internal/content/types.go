// Package content loads and validates the static study material: practice
// questions, scenarios, glossary terms, and true/false talking points.
package content

// Question is one multiple-choice practice question. Options are keyed
// ("a".."d") and Correct names the right key.
type Question struct {
	ID          int               `json:"id"`
	Category    string            `json:"category"`
	Difficulty  string            `json:"difficulty"`
	Text        string            `json:"text"`
	Options     map[string]string `json:"options"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
	StudyPages  []string          `json:"studyPages,omitempty"`
}

// Scenario is a case-study exercise: a situation description followed by one
// multiple-choice question.
type Scenario struct {
	ID              int               `json:"id"`
	Title           string            `json:"title"`
	Difficulty      string            `json:"difficulty"`
	Description     string            `json:"description"`
	Question        string            `json:"question"`
	Options         map[string]string `json:"options"`
	Correct         string            `json:"correct"`
	Explanation     string            `json:"explanation"`
	StudyPages      []string          `json:"studyPages,omitempty"`
	RelatedConcepts []string          `json:"relatedConcepts,omitempty"`
}

// Term is one glossary entry, shown as a flashcard.
type Term struct {
	Term         string   `json:"term"`
	Category     string   `json:"category"`
	Definition   string   `json:"definition"`
	TestRelevant bool     `json:"testRelevant,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// TalkingPoint is a true/false statement with a sourced rationale.
type TalkingPoint struct {
	ID            int    `json:"id"`
	Category      string `json:"category"`
	Statement     string `json:"statement"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
	SourceSection string `json:"sourceSection,omitempty"`
}
