// Package tutor answers free-text Python questions with a language model.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/llm"
	"github.com/abhisek/pytutor/internal/logging"
)

var (
	// ErrEmptyQuestion is returned for blank questions. No model call is
	// made.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrNoAnswer is returned when the model output is empty after
	// cleaning.
	ErrNoAnswer = errors.New("model returned no answer")
)

// Service is the chatbot.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService creates a chatbot backed by provider. log may be nil.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, log: logging.OrNop(log)}
}

// Ask sends question to the model and returns the cleaned answer.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeChat)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuestionMessage(question)}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("ask tutor: %w", err)
	}

	answer := CleanResponse(resp.Text())
	if answer == "" {
		s.log.Warn("empty tutor answer", zap.String("raw", string(resp.Content)))
		return "", ErrNoAnswer
	}
	return answer, nil
}

// CleanResponse keeps the text after the last answer marker, trims every
// line, and drops blank and repeated lines. First occurrences keep their
// order.
func CleanResponse(raw string) string {
	if i := strings.LastIndex(raw, answerMarker); i >= 0 {
		raw = raw[i+len(answerMarker):]
	}

	seen := make(map[string]bool)
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
