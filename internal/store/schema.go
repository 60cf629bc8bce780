package store

// progressSchemaName keys the compiled progress-file schema in the
// schemacheck cache.
const progressSchemaName = "progress-record"

var datePattern = map[string]any{
	"type":    "string",
	"pattern": `^\d{4}-\d{2}-\d{2}$`,
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// progressSchema describes the progress file. Every top-level key is
// optional so older files can be backfilled; present keys must have the
// right shape.
var progressSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"completed_lessons": stringList,
		"quiz_scores": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
		},
		"last_learning_time": map[string]any{"type": "string"},
		"streak_count":       map[string]any{"type": "integer"},
		"badges":             stringList,
		"learning_goal": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "object", "maxProperties": 0},
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"goal_description":  map[string]any{"type": "string"},
						"start_date":        datePattern,
						"end_date":          datePattern,
						"lesson_plan":       stringList,
						"completed_lessons": stringList,
					},
					"required": []any{"goal_description", "start_date", "end_date", "lesson_plan"},
				},
			},
		},
	},
}
