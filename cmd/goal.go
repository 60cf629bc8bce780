package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/ui/layout"
	"github.com/abhisek/pytutor/internal/ui/render"
)

const (
	defaultGoalDescription = "Complete Python basics in 2 weeks"
	defaultGoalDays        = 14
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Set and check a learning goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a learning goal covering every lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		description, _ := cmd.Flags().GetString("description")

		return withSession(cmd, func(a *app) error {
			st, err := a.session.SetGoal(cmd.Context(), description, days)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			lipgloss.Fprintln(out, layout.RenderSuccess("Goal set: "+st.Goal.Description+" by "+st.Goal.EndDate.String()))
			lipgloss.Fprintln(out, render.Goal(st))
			return nil
		})
	},
}

var goalStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress against the learning goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			r, err := a.session.Progress(cmd.Context())
			if err != nil {
				return err
			}
			if r.Goal == nil {
				lipgloss.Fprintln(cmd.OutOrStdout(), "No learning goal set yet.")
				return nil
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Goal(*r.Goal))
			return nil
		})
	},
}

func init() {
	goalSetCmd.Flags().IntP("days", "d", defaultGoalDays, "Days to complete the goal in (1-30)")
	goalSetCmd.Flags().String("description", defaultGoalDescription, "What you want to achieve")

	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalStatusCmd)
}
