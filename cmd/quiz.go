package cmd

import (
	"errors"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/session"
	"github.com/abhisek/pytutor/internal/ui/layout"
	"github.com/abhisek/pytutor/internal/ui/render"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take quizzes on completed lessons",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes with their latest scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			r, err := a.session.Progress(cmd.Context())
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.QuizList(r.Quizzes))
			return nil
		})
	},
}

var quizTakeCmd = &cobra.Command{
	Use:   "take <title>",
	Short: "Answer a quiz question by question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(a *app) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return takeQuiz(cmd, a, p, strings.Join(args, " "))
		})
	},
}

// takeQuiz runs one quiz end to end: gate, questions, grading.
func takeQuiz(cmd *cobra.Command, a *app, p *prompter, title string) error {
	q, err := a.session.OpenQuiz(title)
	if errors.Is(err, session.ErrLessonNotCompleted) {
		p.print(layout.RenderError("Complete the corresponding lesson first."))
		return nil
	}
	if err != nil {
		return err
	}

	answers, err := p.takeQuiz(q)
	if err != nil {
		return err
	}
	res, err := a.session.SubmitQuiz(cmd.Context(), title, answers)
	if err != nil {
		return err
	}
	p.print("")
	p.print(render.QuizResult(res))
	return nil
}

func init() {
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizTakeCmd)
}
