// Package contentgen generates lesson and quiz documents with a language
// model and writes them into a content directory.
package contentgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/catalog"
	"github.com/abhisek/pytutor/internal/llm"
	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/quiz"
	"github.com/abhisek/pytutor/internal/validation"
)

// ErrEmptyTopic is returned when no topic is given.
var ErrEmptyTopic = errors.New("topic is empty")

// Generator produces lesson and quiz documents.
type Generator struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewGenerator creates a generator backed by provider. log may be nil.
func NewGenerator(provider llm.Provider, cfg Config, log *zap.Logger) *Generator {
	return &Generator{provider: provider, cfg: cfg, log: logging.OrNop(log)}
}

// GenerateLesson asks the model for a lesson on topic and validates it as
// a lesson document.
func (g *Generator) GenerateLesson(ctx context.Context, topic string) (catalog.Lesson, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return catalog.Lesson{}, ErrEmptyTopic
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeLessonGen), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildLessonMessage(topic)}},
		Schema:      LessonSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return catalog.Lesson{}, fmt.Errorf("lesson generation: %w", err)
	}

	lesson, err := catalog.ParseLesson(resp.Content)
	if err != nil {
		return catalog.Lesson{}, fmt.Errorf("generated lesson: %w", err)
	}
	g.log.Info("lesson generated",
		zap.String("topic", topic),
		zap.Int("paragraphs", len(lesson.Content)))
	return lesson, nil
}

// GenerateQuiz asks the model for a quiz on topic with n questions. A
// non-positive n uses the configured default.
func (g *Generator) GenerateQuiz(ctx context.Context, topic string, n int) (quiz.Quiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return quiz.Quiz{}, ErrEmptyTopic
	}
	if n <= 0 {
		n = g.cfg.QuizQuestions
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuizGen), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuizMessage(topic, n)}},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("quiz generation: %w", err)
	}

	q, err := catalog.ParseQuiz(resp.Content)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("generated quiz: %w", err)
	}
	if len(q.Questions) != n {
		return quiz.Quiz{}, fmt.Errorf("generated quiz: %w",
			validation.Errorf("questions", "want %d, got %d", n, len(q.Questions)))
	}
	g.log.Info("quiz generated",
		zap.String("topic", topic),
		zap.Int("questions", len(q.Questions)))
	return q, nil
}

// LessonPath returns where a lesson on topic is written under dir.
func LessonPath(dir, topic string) string {
	return filepath.Join(dir, "lessons", Slug(topic)+".json")
}

// QuizPath returns where a quiz on topic is written under dir.
func QuizPath(dir, topic string) string {
	return filepath.Join(dir, "quizzes", Slug(topic)+"_quiz.json")
}

// WriteDocument writes v as indented JSON to path, creating parent
// directories. An existing file is replaced.
func WriteDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Slug turns a topic into a file name stem: lower case, runs of other
// characters collapsed to a single underscore.
func Slug(topic string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
