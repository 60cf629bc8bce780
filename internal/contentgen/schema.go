package contentgen

import "github.com/abhisek/pytutor/internal/llm"

// The schemas sent to providers stay within the keywords every structured
// output backend accepts. Generated documents are then checked against the
// full document schemas by the catalog parser.

// LessonSchema defines the JSON schema for lesson generation.
var LessonSchema = &llm.Schema{
	Name:        "generated-lesson",
	Description: "A Python lesson: a title and an ordered list of paragraphs",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The lesson topic",
			},
			"content": map[string]any{
				"type":        "array",
				"description": "Paragraphs in teaching order; code examples are fenced with triple quotes",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"title", "content"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "generated-quiz",
	Description: "A multiple choice Python quiz; every question has exactly 4 distinct options and the answer is one of them",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Quiz title, e.g. \"Quiz: Loops\"",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "Exact text of the correct option",
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}
