package content

// Schema pairs a name with a JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

var optionsSchema = map[string]any{
	"type":                 "object",
	"minProperties":        2,
	"additionalProperties": map[string]any{"type": "string"},
}

// QuestionsSchema validates the questions data file.
var QuestionsSchema = &Schema{
	Name: "questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "integer"},
						"category":    map[string]any{"type": "string", "minLength": 1},
						"difficulty":  map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
						"text":        map[string]any{"type": "string", "minLength": 1},
						"options":     optionsSchema,
						"correct":     map[string]any{"type": "string", "minLength": 1},
						"explanation": map[string]any{"type": "string"},
						"studyPages":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"id", "category", "difficulty", "text", "options", "correct", "explanation"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// ScenariosSchema validates the scenarios data file.
var ScenariosSchema = &Schema{
	Name: "scenarios",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scenarios": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":              map[string]any{"type": "integer"},
						"title":           map[string]any{"type": "string", "minLength": 1},
						"difficulty":      map[string]any{"type": "string"},
						"description":     map[string]any{"type": "string", "minLength": 1},
						"question":        map[string]any{"type": "string", "minLength": 1},
						"options":         optionsSchema,
						"correct":         map[string]any{"type": "string", "minLength": 1},
						"explanation":     map[string]any{"type": "string"},
						"studyPages":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"relatedConcepts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"id", "title", "description", "question", "options", "correct", "explanation"},
				},
			},
		},
		"required": []any{"scenarios"},
	},
}

// TermsSchema validates the glossary terms data file.
var TermsSchema = &Schema{
	Name: "terms",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"terms": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":         map[string]any{"type": "string", "minLength": 1},
						"category":     map[string]any{"type": "string", "minLength": 1},
						"definition":   map[string]any{"type": "string", "minLength": 1},
						"testRelevant": map[string]any{"type": "boolean"},
						"keywords":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"term", "category", "definition"},
				},
			},
		},
		"required": []any{"terms"},
	},
}

// TalkingPointsSchema validates the talking points data file.
var TalkingPointsSchema = &Schema{
	Name: "talking-points",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"talkingPoints": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "integer"},
						"category":      map[string]any{"type": "string", "minLength": 1},
						"statement":     map[string]any{"type": "string", "minLength": 1},
						"correct":       map[string]any{"type": "boolean"},
						"explanation":   map[string]any{"type": "string"},
						"sourceSection": map[string]any{"type": "string"},
					},
					"required": []any{"id", "category", "statement", "correct", "explanation"},
				},
			},
		},
		"required": []any{"talkingPoints"},
	},
}
