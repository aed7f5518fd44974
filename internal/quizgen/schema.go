package quizgen

import "github.com/abhisek/quizwise/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz responses. Every
// property is required and extra properties are rejected so the schema
// also works with OpenAI strict mode.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A quiz generated from a document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short title for the quiz",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "true_false", "short_answer"},
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The question shown to the quiz taker",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multiple_choice. Empty array otherwise.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "multiple_choice: the text of the correct option. true_false: \"true\" or \"false\". short_answer: a model answer.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct, citing the document",
						},
						"focus_area": map[string]any{
							"type":        "string",
							"description": "Which focus area the question targets",
						},
					},
					"required":             []any{"type", "text", "choices", "answer", "explanation", "focus_area"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}
