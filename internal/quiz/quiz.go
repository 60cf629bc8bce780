// Package quiz grades multiple-choice quizzes.
package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/pytutor/internal/validation"
)

// OptionCount is the number of choices every question offers.
const OptionCount = 4

// Question is one multiple-choice question.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

// Quiz is an ordered list of questions.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Key returns the normalized key under which the quiz's score is stored.
func (q Quiz) Key() string {
	return NormalizeKey(q.Title)
}

// Validate checks every question in the quiz.
func (q Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return validation.Errorf("title", "must not be empty")
	}
	if len(q.Questions) == 0 {
		return validation.Errorf("questions", "quiz %q has no questions", q.Title)
	}
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Validate checks that the question has text, exactly four distinct
// options and an answer that is one of them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return validation.Errorf("question", "must not be empty")
	}
	if len(q.Options) != OptionCount {
		return validation.Errorf("options", "want %d, got %d", OptionCount, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			return validation.Errorf("options", "duplicate option %q", o)
		}
		seen[o] = true
	}
	if !seen[q.Answer] {
		return validation.Errorf("answer", "%q is not one of the options", q.Answer)
	}
	return nil
}

// ResolveAnswer maps learner input to one of the question's options. The
// input may be a 1-based option number or the option text, ignoring case
// and surrounding space.
func (q Question) ResolveAnswer(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(q.Options) {
			return q.Options[n-1], true
		}
		return "", false
	}
	for _, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(o), input) {
			return o, true
		}
	}
	return "", false
}

// NormalizeKey lowercases title and replaces spaces with underscores.
func NormalizeKey(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

// Score counts the answers that exactly match the question's answer at the
// same position. The result is in [0, len(questions)].
func Score(questions []Question, answers []string) (int, error) {
	if len(answers) != len(questions) {
		return 0, validation.Errorf("answers", "got %d answers for %d questions", len(answers), len(questions))
	}
	score := 0
	for i, q := range questions {
		if answers[i] == q.Answer {
			score++
		}
	}
	return score, nil
}

// Feedback returns the message shown after a quiz is graded.
func Feedback(score, total int) string {
	switch {
	case score == total:
		return "Great job! You can move to a higher difficulty level."
	case score >= total/2:
		return "Good work! Keep practicing to improve."
	default:
		return "Don't worry! Review the lesson and try again."
	}
}
