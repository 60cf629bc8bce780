// Package llm talks to generative language models. The tutor chatbot and
// the content generator depend only on the Provider interface; concrete
// providers wrap the Gemini, OpenAI, Anthropic and OpenRouter SDKs.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single response for a single request.
type Provider interface {
	// Generate sends req and blocks until the model answers or ctx ends.
	// When req.Schema is set the response Content is JSON validated
	// against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Chat and content generation both send
	// a single user message.
	Messages []Message

	// Schema, when set, asks the provider for structured JSON output.
	// When nil the response is free text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness in [0, 1]. Zero leaves the provider
	// default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "quiz-document".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON document for schema requests and the
	// raw text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is one of "end", "max_tokens", "error".
	StopReason string
}

// Text returns the response as plain text. A JSON string literal is
// unquoted; anything else is returned as is.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var s string
	if len(r.Content) > 0 && r.Content[0] == '"' && json.Unmarshal(r.Content, &s) == nil {
		return s
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
