package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

//go:embed data/*.json
var defaultData embed.FS

// Set is the full loaded study corpus.
type Set struct {
	Questions     []Question
	Scenarios     []Scenario
	Terms         []Term
	TalkingPoints []TalkingPoint
}

// Load reads the study content from dir, falling back to the embedded
// default dataset for any file dir does not provide. Every file is
// schema-validated before decoding; a file that fails validation fails the
// whole load rather than producing a partial corpus.
func Load(dir string) (*Set, error) {
	set := &Set{}

	files := []struct {
		name   string
		schema *Schema
		decode func(raw []byte) error
	}{
		{"questions.json", QuestionsSchema, func(raw []byte) error {
			var doc struct {
				Questions []Question `json:"questions"`
			}
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}
			set.Questions = doc.Questions
			return nil
		}},
		{"scenarios.json", ScenariosSchema, func(raw []byte) error {
			var doc struct {
				Scenarios []Scenario `json:"scenarios"`
			}
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}
			set.Scenarios = doc.Scenarios
			return nil
		}},
		{"terms.json", TermsSchema, func(raw []byte) error {
			var doc struct {
				Terms []Term `json:"terms"`
			}
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}
			set.Terms = doc.Terms
			return nil
		}},
		{"talking-points.json", TalkingPointsSchema, func(raw []byte) error {
			var doc struct {
				TalkingPoints []TalkingPoint `json:"talkingPoints"`
			}
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}
			set.TalkingPoints = doc.TalkingPoints
			return nil
		}},
	}

	for _, f := range files {
		raw, err := readFile(dir, f.name)
		if err != nil {
			return nil, err
		}
		if err := validate(f.schema, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		if err := f.decode(raw); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}

	if err := set.check(); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadDefault loads the embedded dataset only.
func LoadDefault() (*Set, error) {
	return Load("")
}

// readFile prefers dir/name when present, otherwise the embedded copy.
func readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return raw, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	raw, err := defaultData.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return raw, nil
}

// check enforces the referential rules the schemas cannot express: every
// correct key must name an existing option, and IDs must be unique per file.
func (s *Set) check() error {
	qids := map[int]bool{}
	for _, q := range s.Questions {
		if qids[q.ID] {
			return fmt.Errorf("questions.json: duplicate id %d", q.ID)
		}
		qids[q.ID] = true
		if _, ok := q.Options[q.Correct]; !ok {
			return fmt.Errorf("questions.json: id %d: correct key %q not in options", q.ID, q.Correct)
		}
	}

	sids := map[int]bool{}
	for _, sc := range s.Scenarios {
		if sids[sc.ID] {
			return fmt.Errorf("scenarios.json: duplicate id %d", sc.ID)
		}
		sids[sc.ID] = true
		if _, ok := sc.Options[sc.Correct]; !ok {
			return fmt.Errorf("scenarios.json: id %d: correct key %q not in options", sc.ID, sc.Correct)
		}
	}

	return nil
}

// Categories returns the sorted set of term categories. This is the closed
// category list the reward engine is configured with: flashcard review is
// what marks a category as studied.
func (s *Set) Categories() []string {
	seen := map[string]bool{}
	for _, t := range s.Terms {
		seen[t.Category] = true
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// QuestionCategories returns the sorted set of question categories, used by
// the quiz screen's category filter.
func (s *Set) QuestionCategories() []string {
	seen := map[string]bool{}
	for _, q := range s.Questions {
		seen[q.Category] = true
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// OptionKeys returns a question's option keys in display order.
func OptionKeys(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
