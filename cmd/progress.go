package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/ui/render"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show streak, badges, quiz scores and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			r, err := a.session.Progress(cmd.Context())
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Progress(r))
			return nil
		})
	},
}
