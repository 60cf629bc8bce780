package cmd

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/tutor"
	"github.com/abhisek/pytutor/internal/ui/render"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI tutor a Python question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			t, err := a.tutor(cmd)
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			answer, err := t.Ask(cmd.Context(), question)
			if err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), render.Answer(question, answer))
			return nil
		})
	},
}

// tutor builds the chatbot on the configured provider.
func (a *app) tutor(cmd *cobra.Command) (*tutor.Service, error) {
	provider, err := a.provider(cmd.Context())
	if err != nil {
		return nil, err
	}
	cfg := tutor.DefaultConfig()
	cfg.Timeout = a.cfg.Tutor.Timeout
	cfg.MaxTokens = a.cfg.Tutor.MaxTokens
	return tutor.NewService(provider, cfg, a.log), nil
}
