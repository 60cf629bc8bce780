package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/tutor"
	"github.com/abhisek/pytutor/internal/ui/components"
	"github.com/abhisek/pytutor/internal/ui/layout"
	"github.com/abhisek/pytutor/internal/ui/render"
)

var mainMenu = components.Labels("Lesson", "Quiz", "Set Learning Goal", "Progress", "Chatbot", "Quit")

const (
	menuLesson = iota
	menuQuiz
	menuGoal
	menuProgress
	menuChatbot
	menuQuit
)

// runApp opens the stores, starts a session and runs the menu loop until
// the learner quits or input ends.
func runApp(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	m := &menu{app: a, cmd: cmd, p: p}
	err = m.run()
	if errors.Is(err, errAborted) {
		return nil
	}
	return err
}

type menu struct {
	app *app
	cmd *cobra.Command
	p   *prompter

	// tutor is built on first use of the chatbot.
	tutor *tutor.Service
}

func (m *menu) run() error {
	start, err := m.app.session.Start(m.cmd.Context())
	if err != nil {
		return err
	}
	m.p.print(layout.RenderHeader("AI Tutor for Programming in Python",
		start.Record.StreakCount, len(start.Record.Badges)))
	m.p.print(render.Streak(start.Streak))
	if len(start.NewBadges) > 0 {
		m.p.print(render.NewBadges(start.NewBadges))
	}

	for {
		m.p.print("")
		choice, err := m.p.choose("Menu:", mainMenu)
		if err != nil {
			return err
		}
		if choice == menuQuit {
			m.p.print(render.Streak(start.Streak))
			return nil
		}

		if err := m.dispatch(choice); err != nil {
			if errors.Is(err, errAborted) {
				return err
			}
			m.app.log.Warn("menu action failed", zap.Int("choice", choice), zap.Error(err))
			m.p.print(layout.RenderError(err.Error()))
		}
	}
}

func (m *menu) dispatch(choice int) error {
	switch choice {
	case menuLesson:
		return m.lesson()
	case menuQuiz:
		return m.quiz()
	case menuGoal:
		return m.goal()
	case menuProgress:
		return m.progress()
	case menuChatbot:
		return m.chatbot()
	}
	return nil
}

func (m *menu) lesson() error {
	r, err := m.app.session.Progress(m.cmd.Context())
	if err != nil {
		return err
	}
	m.p.print(render.LessonList(r.Lessons))
	titles := m.app.catalog.LessonTitles()
	idx, err := m.p.choose("Select a lesson:", components.Labels(titles...))
	if err != nil {
		return err
	}

	l, err := m.app.session.LoadLesson(titles[idx])
	if err != nil {
		return err
	}
	m.p.print("")
	m.p.print(render.Lesson(l))

	done, err := m.p.confirm("Mark as completed?")
	if err != nil || !done {
		return err
	}
	res, err := m.app.session.CompleteLesson(m.cmd.Context(), titles[idx])
	if err != nil {
		return err
	}
	m.p.print(lessonCompleted(titles[idx], res))
	return nil
}

func (m *menu) quiz() error {
	r, err := m.app.session.Progress(m.cmd.Context())
	if err != nil {
		return err
	}
	m.p.print(render.QuizList(r.Quizzes))

	items := make([]components.MenuItem, len(r.Quizzes))
	for i, q := range r.Quizzes {
		items[i] = components.MenuItem{Label: q.Title}
	}
	idx, err := m.p.choose("Select a quiz:", components.NewMenu(items...))
	if err != nil {
		return err
	}
	return takeQuiz(m.cmd, m.app, m.p, r.Quizzes[idx].Title)
}

func (m *menu) goal() error {
	description, err := m.p.ask("What is your learning goal?", defaultGoalDescription)
	if err != nil {
		return err
	}
	days, err := m.p.askInt("How many days do you want to complete it in?", defaultGoalDays, 1, 30)
	if err != nil {
		return err
	}
	st, err := m.app.session.SetGoal(m.cmd.Context(), description, days)
	if err != nil {
		return err
	}
	m.p.print(layout.RenderSuccess(fmt.Sprintf("Goal set: %s by %s", st.Goal.Description, st.Goal.EndDate)))
	m.p.print(render.Goal(st))
	return nil
}

func (m *menu) progress() error {
	r, err := m.app.session.Progress(m.cmd.Context())
	if err != nil {
		return err
	}
	m.p.print(render.Progress(r))
	return nil
}

// chatbot answers questions until the learner enters a blank line.
func (m *menu) chatbot() error {
	if m.tutor == nil {
		t, err := m.app.tutor(m.cmd)
		if err != nil {
			return err
		}
		m.tutor = t
	}

	m.p.print(layout.RenderSection("AI Chatbot for Python Q&A"))
	m.p.print(render.Hint("Ask a question, or press Enter to go back."))
	for {
		question, err := m.p.ask("You:", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(question) == "" {
			return nil
		}
		answer, err := m.tutor.Ask(m.cmd.Context(), question)
		if err != nil {
			m.p.print(layout.RenderError(err.Error()))
			continue
		}
		m.p.print(render.Answer(question, answer))
	}
}
