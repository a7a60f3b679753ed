package cardgen

import "github.com/abhisek/cardz/internal/llm"

// CardBatchSchema defines the JSON schema for LLM card generation responses.
var CardBatchSchema = &llm.Schema{
	Name:        "card-batch",
	Description: "A batch of spaced-repetition flashcards for one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"qa_hint", "multiple_choice"},
							"description": "Card format: free recall with optional hint, or pick from options",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The prompt shown on the card front, plain text",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The answer for qa_hint cards. Empty for multiple_choice.",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "Optional short nudge for qa_hint cards. Empty when not helpful.",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multiple_choice. Empty array for qa_hint.",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Index of the correct option within choices",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences of context shown after the reveal",
						},
					},
					"required":             []any{"kind", "question", "answer", "hint", "choices", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}
