package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pytutor/internal/quiz"
	"github.com/abhisek/pytutor/internal/ui/components"
	"github.com/abhisek/pytutor/internal/ui/layout"
	"github.com/abhisek/pytutor/internal/ui/theme"
)

// errAborted is returned when input ends before a prompt is answered.
var errAborted = errors.New("input closed")

// prompter reads line answers from in and writes styled prompts to out.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// print writes styled text followed by a newline.
func (p *prompter) print(s string) {
	lipgloss.Fprintln(p.out, s)
}

// ask shows label and returns the trimmed answer. An empty answer yields
// def.
func (p *prompter) ask(label, def string) (string, error) {
	hint := ""
	if def != "" {
		hint = theme.Hint.Render(" [" + def + "]")
	}
	lipgloss.Fprint(p.out, theme.Selected.Render(label)+hint+" ")
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errAborted
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// choose shows menu and asks until a valid item is picked.
func (p *prompter) choose(label string, menu components.Menu) (int, error) {
	p.print(menu.View())
	for {
		answer, err := p.ask(label, "")
		if err != nil {
			return -1, err
		}
		if idx, ok := menu.Choose(answer); ok {
			return idx, nil
		}
		p.print(layout.RenderError(fmt.Sprintf("Pick 1-%d.", len(menu.Items))))
	}
}

// askInt asks until the answer is an integer in [lo, hi].
func (p *prompter) askInt(label string, def, lo, hi int) (int, error) {
	for {
		answer, err := p.ask(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		p.print(layout.RenderError(fmt.Sprintf("Enter a number from %d to %d.", lo, hi)))
	}
}

// confirm asks a yes/no question.
func (p *prompter) confirm(label string) (bool, error) {
	answer, err := p.ask(label+" (y/n)", "n")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// takeQuiz asks every question in order and returns the chosen option
// texts. Answers may be an option number or the option text.
func (p *prompter) takeQuiz(q quiz.Quiz) ([]string, error) {
	answers := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		p.print("")
		p.print(components.NewMultiChoice(i+1, len(q.Questions), question.Text, question.Options).View())
		for {
			input, err := p.ask("Your answer:", "")
			if err != nil {
				return nil, err
			}
			if opt, ok := question.ResolveAnswer(input); ok {
				answers[i] = opt
				break
			}
			p.print(layout.RenderError(fmt.Sprintf("Answer with 1-%d or the option text.", len(question.Options))))
		}
	}
	return answers, nil
}
