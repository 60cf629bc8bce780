package catalog

const (
	lessonSchemaName = "lesson-document"
	quizSchemaName   = "quiz-document"
)

// LessonDocumentSchema describes a lesson file.
var LessonDocumentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string", "minLength": 1},
		"content": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string"},
		},
	},
	"required":             []any{"title", "content"},
	"additionalProperties": false,
}

// QuizDocumentSchema describes a quiz file. That the answer is one of the
// options is checked after decoding.
var QuizDocumentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string", "minLength": 1},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":        "array",
						"minItems":    4,
						"maxItems":    4,
						"uniqueItems": true,
						"items":       map[string]any{"type": "string"},
					},
					"answer": map[string]any{"type": "string"},
				},
				"required":             []any{"question", "options", "answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"title", "questions"},
	"additionalProperties": false,
}
