package llm

import (
	"encoding/json"
	"strings"

	"github.com/abhisek/pytutor/internal/schemacheck"
)

// StripCodeFence removes a surrounding Markdown code fence, such as
// ```json ... ```, from model output. Text without a fence is returned
// trimmed.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// structuredContent cleans raw model output for a schema request and
// validates it. It returns *ErrInvalidResponse on failure.
func structuredContent(schema *Schema, raw string) (json.RawMessage, error) {
	content := json.RawMessage(StripCodeFence(raw))
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// validateResponse validates raw JSON against schema. A nil schema always
// passes.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	if err := schemacheck.Validate("llm-"+schema.Name, schema.Definition, raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
