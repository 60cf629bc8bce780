package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pytutor",
	Short: "AI tutor for learning Python",
	Long: "PyTutor is a terminal Python tutor: lessons, quizzes, learning goals, " +
		"streaks and badges, with an AI chatbot for questions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("progress", "", "Path to the progress file (overrides PYTUTOR_PROGRESS)")
	flags.String("events-db", "", "Path to the SQLite event log (overrides PYTUTOR_EVENTS_DB)")
	flags.String("content", "", "Directory with lessons/ and quizzes/ to use instead of the built-in content")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")

	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
