package schemacheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{"type": "string"},
		"age":  map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"name"},
	"additionalProperties": false,
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Ada","age":36}`, false},
		{"missing required", `{"age":36}`, true},
		{"wrong type", `{"name":"Ada","age":"old"}`, true},
		{"negative", `{"name":"Ada","age":-1}`, true},
		{"extra key", `{"name":"Ada","nick":"A"}`, true},
		{"not json", `{"name":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("test-person", personSchema, []byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompileCaches(t *testing.T) {
	a, err := Compile("test-cache", personSchema)
	require.NoError(t, err)
	b, err := Compile("test-cache", personSchema)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCompileInvalidDefinition(t *testing.T) {
	_, err := Compile("test-bad", map[string]any{"type": 12})
	assert.Error(t, err)
}
