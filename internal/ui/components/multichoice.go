package components

import (
	"fmt"

	"github.com/abhisek/pytutor/internal/ui/theme"
)

// MultiChoice renders one multiple-choice question.
type MultiChoice struct {
	Number  int
	Total   int
	Text    string
	Options []string

	// Chosen and Answer are set to reveal the result after grading.
	Chosen string
	Answer string
}

// NewMultiChoice creates an unanswered multiple-choice question.
func NewMultiChoice(number, total int, text string, options []string) MultiChoice {
	return MultiChoice{
		Number:  number,
		Total:   total,
		Text:    text,
		Options: options,
	}
}

// Reveal returns a copy that highlights the correct option and the chosen
// one.
func (m MultiChoice) Reveal(chosen, answer string) MultiChoice {
	m.Chosen = chosen
	m.Answer = answer
	return m
}

// View renders the question and its numbered options.
func (m MultiChoice) View() string {
	s := theme.Subtitle.Render(fmt.Sprintf("Question %d/%d", m.Number, m.Total)) + "\n"
	s += theme.Body.Bold(true).Render(m.Text) + "\n\n"

	revealed := m.Answer != ""
	for i, opt := range m.Options {
		line := fmt.Sprintf("  %d)  %s", i+1, opt)
		switch {
		case revealed && opt == m.Answer:
			s += theme.Correct.Render(line) + "\n"
		case revealed && opt == m.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case revealed:
			s += theme.Locked.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}

// IsCorrect reports whether the revealed choice matches the answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Answer != "" && m.Chosen == m.Answer
}
