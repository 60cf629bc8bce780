package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveModel(tt.input, geminiModels), tt.input)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"uniqueItems": true,
						},
						"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
					},
				},
			},
		},
		"required": []string{"title", "questions"},
	}

	schema := buildGeminiSchema(def)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"title", "questions"}, schema.Required)
	require.Contains(t, schema.Properties, "questions")

	questions := schema.Properties["questions"]
	assert.Equal(t, genai.TypeArray, questions.Type)
	require.NotNil(t, questions.MinItems)
	assert.EqualValues(t, 5, *questions.MinItems)
	require.NotNil(t, questions.MaxItems)
	assert.EqualValues(t, 5, *questions.MaxItems)

	item := questions.Items
	require.NotNil(t, item)
	assert.Equal(t, genai.TypeString, item.Properties["options"].Items.Type)
	assert.Len(t, item.Properties["level"].Enum, 2)
}

func TestBuildGeminiConfig(t *testing.T) {
	cfg := buildGeminiConfig(Request{System: "sys", Temperature: 0.5})
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-6)
	assert.Empty(t, cfg.ResponseMIMEType)

	cfg = buildGeminiConfig(Request{Schema: personSchema()})
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.NotNil(t, cfg.ResponseSchema)
	assert.Nil(t, cfg.Temperature)
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "Q"},
		{Role: RoleAssistant, Content: "A"},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}
