package bank

// contentSchema is the JSON Schema a bank content document must satisfy
// before items are constructed. Structural consistency beyond this shape
// (answer keys matching mechanics, ID uniqueness) is checked by New.
var contentSchema = map[string]any{
	"type":     "object",
	"required": []any{"items"},
	"properties": map[string]any{
		"objectives": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title"},
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"title": map[string]any{"type": "string"},
				},
			},
		},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "mechanic", "stimulus", "answer_key"},
				"properties": map[string]any{
					"id":           map[string]any{"type": "string", "minLength": 1},
					"objective_id": map[string]any{"type": "string"},
					"mechanic": map[string]any{
						"type": "string",
						"enum": []any{"decision_lab", "triage", "sequencer", "match_pairs"},
					},
					"stimulus":   map[string]any{"type": "string", "minLength": 1},
					"choices":    idLabelArray,
					"cards":      idLabelArray,
					"steps":      idLabelArray,
					"lefts":      idLabelArray,
					"rights":     idLabelArray,
					"bin_names":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"answer_key": map[string]any{"type": "object"},
					"detectors": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "kind"},
							"properties": map[string]any{
								"id":   map[string]any{"type": "string", "minLength": 1},
								"kind": map[string]any{"type": "string", "minLength": 1},
								"arg":  map[string]any{"type": "string"},
							},
						},
					},
					"hints": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

var idLabelArray = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "label"},
		"properties": map[string]any{
			"id":    map[string]any{"type": "string", "minLength": 1},
			"label": map[string]any{"type": "string"},
		},
	},
}
