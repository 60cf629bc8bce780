package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/pytutor/internal/contentgen"
	"github.com/abhisek/pytutor/internal/ui/layout"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate lesson and quiz documents with the LLM",
	Long: "Generate writes new lesson and quiz documents into a content directory. " +
		"Generated documents are not part of the lesson catalog until they are added to it.",
}

var generateLessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Generate a lesson document",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		return withApp(cmd, func(a *app) error {
			g, dir, err := a.generator(cmd)
			if err != nil {
				return err
			}
			lesson, err := g.GenerateLesson(cmd.Context(), topic)
			if err != nil {
				return err
			}
			path := contentgen.LessonPath(dir, topic)
			if err := contentgen.WriteDocument(path, lesson); err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), layout.RenderSuccess(
				fmt.Sprintf("Wrote %q (%d paragraphs) to %s", lesson.Title, len(lesson.Content), path)))
			return nil
		})
	},
}

var generateQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz document",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		return withApp(cmd, func(a *app) error {
			g, dir, err := a.generator(cmd)
			if err != nil {
				return err
			}
			q, err := g.GenerateQuiz(cmd.Context(), topic, count)
			if err != nil {
				return err
			}
			path := contentgen.QuizPath(dir, topic)
			if err := contentgen.WriteDocument(path, q); err != nil {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), layout.RenderSuccess(
				fmt.Sprintf("Wrote %q (%d questions) to %s", q.Title, len(q.Questions), path)))
			return nil
		})
	},
}

// generator builds a content generator and resolves the output directory:
// --out, then the configured content directory, then ./content.
func (a *app) generator(cmd *cobra.Command) (*contentgen.Generator, string, error) {
	provider, err := a.provider(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	cfg := contentgen.DefaultConfig()
	cfg.QuizQuestions = a.cfg.Generate.QuizQuestions
	cfg.MaxTokens = a.cfg.Generate.MaxTokens

	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir = a.cfg.ContentDir
	}
	if dir == "" {
		dir = "content"
	}
	return contentgen.NewGenerator(provider, cfg, a.log), dir, nil
}

func init() {
	for _, c := range []*cobra.Command{generateLessonCmd, generateQuizCmd} {
		c.Flags().StringP("topic", "t", "", "Topic to generate content for")
		c.Flags().StringP("out", "o", "", "Content directory to write into")
		_ = c.MarkFlagRequired("topic")
	}
	generateQuizCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")

	generateCmd.AddCommand(generateLessonCmd)
	generateCmd.AddCommand(generateQuizCmd)
}
