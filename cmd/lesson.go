package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/session"
	"github.com/abhisek/pytutor/internal/ui/layout"
	"github.com/abhisek/pytutor/internal/ui/render"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Read lessons and mark them completed",
}

var lessonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons in teaching order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			r, err := a.session.Progress(cmd.Context())
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.LessonList(r.Lessons))
			return nil
		})
	},
}

var lessonShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Print a lesson",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			l, err := a.session.LoadLesson(strings.Join(args, " "))
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Lesson(l))
			return nil
		})
	},
}

var lessonCompleteCmd = &cobra.Command{
	Use:   "complete <title>",
	Short: "Mark a lesson as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(a *app) error {
			res, err := a.session.CompleteLesson(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), lessonCompleted(strings.Join(args, " "), res))
			return nil
		})
	},
}

func lessonCompleted(title string, res session.LessonResult) string {
	msg := layout.RenderSuccess(fmt.Sprintf("%q marked as completed!", title))
	if res.AlreadyCompleted {
		msg = layout.RenderSuccess(fmt.Sprintf("%q was already completed.", title))
	}
	if len(res.NewBadges) > 0 {
		msg += "\n" + render.NewBadges(res.NewBadges)
	}
	return msg
}

func init() {
	lessonCmd.AddCommand(lessonListCmd)
	lessonCmd.AddCommand(lessonShowCmd)
	lessonCmd.AddCommand(lessonCompleteCmd)
}
