package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/store"
	"github.com/abhisek/pytutor/internal/ui/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded badge awards and quiz attempts",
}

var historyBadgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badge awards, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(a *app) error {
			records, err := a.db.EventRepo().QueryBadgeAwards(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.BadgeHistory(records))
			return nil
		})
	},
}

var historyQuizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "List quiz attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(a *app) error {
			records, err := a.db.EventRepo().QueryQuizAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.QuizHistory(records))
			return nil
		})
	},
}

func init() {
	historyBadgesCmd.Flags().IntP("limit", "n", 0, "Number of events to show (0 for all)")
	historyQuizzesCmd.Flags().IntP("limit", "n", 0, "Number of events to show (0 for all)")

	historyCmd.AddCommand(historyBadgesCmd)
	historyCmd.AddCommand(historyQuizzesCmd)
}
