// Package render turns lessons, quizzes and progress into styled terminal
// text. Every function returns a string; callers decide where it goes.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pytutor/internal/badges"
	"github.com/abhisek/pytutor/internal/catalog"
	"github.com/abhisek/pytutor/internal/goal"
	"github.com/abhisek/pytutor/internal/session"
	"github.com/abhisek/pytutor/internal/store"
	"github.com/abhisek/pytutor/internal/streak"
	"github.com/abhisek/pytutor/internal/ui/components"
	"github.com/abhisek/pytutor/internal/ui/layout"
	"github.com/abhisek/pytutor/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04"

// Lesson renders a lesson document, one paragraph per content entry.
func Lesson(l catalog.Lesson) string {
	var b strings.Builder
	b.WriteString(layout.RenderSection(l.Title))
	b.WriteString("\n\n")
	para := theme.Body.Width(layout.Width)
	for _, p := range l.Content {
		b.WriteString(para.Render(p))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// LessonList renders lessons in catalog order with completion marks.
func LessonList(lessons []session.LessonStatus) string {
	lines := []string{layout.RenderSection("Lessons")}
	for i, l := range lessons {
		mark := theme.Locked.Render("○")
		if l.Completed {
			mark = theme.Correct.Render("✓")
		}
		lines = append(lines, fmt.Sprintf("  %d. %s %s", i+1, mark, theme.Body.Render(l.Title)))
	}
	return strings.Join(lines, "\n")
}

// QuizList renders quizzes in catalog order with their latest score.
func QuizList(quizzes []session.QuizStatus) string {
	lines := []string{layout.RenderSection("Quizzes")}
	for i, q := range quizzes {
		title := theme.Body.Render(q.Title)
		status := ""
		switch {
		case !q.Unlocked:
			title = theme.Locked.Render(q.Title)
			status = theme.Hint.Render(fmt.Sprintf("complete %q first", q.Lesson))
		case q.Taken:
			status = scoreText(q.Score, q.Total)
		default:
			status = theme.Hint.Render("not taken")
		}
		lines = append(lines, fmt.Sprintf("  %d. %s  %s", i+1, title, status))
	}
	return strings.Join(lines, "\n")
}

// Question renders one quiz question before it is answered.
func Question(number, total int, text string, options []string) string {
	return components.NewMultiChoice(number, total, text, options).View()
}

// QuizResult renders a graded quiz and any badges it unlocked.
func QuizResult(res session.QuizResult) string {
	var b strings.Builder
	b.WriteString(layout.RenderSection(res.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Score: %s\n", scoreText(res.Score, res.Total)))
	bar := components.NewProgressBar("", components.Fraction(res.Score, res.Total), true, layout.Width/2)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(res.Feedback))
	if len(res.NewBadges) > 0 {
		b.WriteString("\n\n")
		b.WriteString(NewBadges(res.NewBadges))
	}
	return b.String()
}

// NewBadges announces freshly unlocked badges. It returns "" for none.
func NewBadges(awards []badges.Award) string {
	lines := make([]string, 0, len(awards))
	for _, a := range awards {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			a.Badge.Icon(),
			theme.Badge.Render("New badge: "+string(a.Badge)),
			theme.Hint.Render("("+a.Reason+")")))
	}
	return strings.Join(lines, "\n")
}

// Streak describes the streak after a session start.
func Streak(res streak.Result) string {
	switch res.Outcome {
	case streak.OutcomeIncrement:
		return theme.Badge.Render(fmt.Sprintf("★ %d-day streak! Keep it going.", res.Current))
	case streak.OutcomeReset, streak.OutcomeUnreadable:
		return theme.Body.Render("★ A new streak starts today.")
	default:
		return theme.Subtitle.Render(fmt.Sprintf("★ Streak: %d day(s)", res.Current))
	}
}

// Goal renders a learning goal and how far along it is.
func Goal(st goal.Status) string {
	var b strings.Builder
	b.WriteString(layout.RenderSection("Learning Goal"))
	b.WriteString("\n")
	if st.Goal.Description != "" {
		b.WriteString(theme.Body.Render(st.Goal.Description))
		b.WriteString("\n")
	}
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s to %s", st.Goal.StartDate, st.Goal.EndDate)))
	b.WriteString("\n\n")

	total := len(st.Completed) + len(st.Remaining)
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d lessons", len(st.Completed), total),
		components.Fraction(len(st.Completed), total), true, layout.Width)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	switch {
	case st.Done():
		b.WriteString(layout.RenderSuccess("Goal complete"))
	case st.Expired():
		b.WriteString(layout.RenderError(fmt.Sprintf("Goal ended %d day(s) ago", -st.DaysLeft)))
	case st.OnTrack:
		b.WriteString(layout.RenderSuccess(fmt.Sprintf("On track: %d day(s) left for %d lesson(s)", st.DaysLeft, len(st.Remaining))))
	default:
		b.WriteString(layout.RenderError(fmt.Sprintf("Behind: %d day(s) left for %d lesson(s)", st.DaysLeft, len(st.Remaining))))
	}

	if len(st.Remaining) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Remaining:"))
		for _, l := range st.Remaining {
			b.WriteString("\n  • " + theme.Body.Render(l))
		}
	}
	return b.String()
}

// Progress renders the full progress report.
func Progress(r session.Report) string {
	sections := []string{
		layout.RenderHeader("Progress", r.StreakCount, len(r.Badges)),
		theme.Subtitle.Render("Last learned: " + r.LastLearningTime),
		LessonList(r.Lessons),
		QuizList(r.Quizzes),
		Badges(r.Badges),
	}
	if r.Goal != nil {
		sections = append(sections, Goal(*r.Goal))
	} else {
		sections = append(sections, theme.Hint.Render("No learning goal set."))
	}
	return strings.Join(sections, "\n\n")
}

// Badges renders every badge, marking the ones held.
func Badges(held []badges.Badge) string {
	have := make(map[badges.Badge]bool, len(held))
	for _, b := range held {
		have[b] = true
	}
	lines := []string{layout.RenderSection("Badges")}
	for _, b := range badges.All() {
		if have[b] {
			lines = append(lines, fmt.Sprintf("  %s %s", b.Icon(), theme.Badge.Render(string(b))))
			continue
		}
		lines = append(lines, theme.Locked.Render(fmt.Sprintf("  ·  %s  %s", b, b.Description())))
	}
	return strings.Join(lines, "\n")
}

// BadgeHistory renders recorded badge awards in the order given.
func BadgeHistory(records []store.BadgeAwardRecord) string {
	if len(records) == 0 {
		return theme.Hint.Render("No badges recorded yet.")
	}
	lines := []string{layout.RenderSection("Badge History")}
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			theme.Subtitle.Render(r.Timestamp.Local().Format(timeLayout)),
			theme.Badge.Render(r.Badge),
			theme.Hint.Render(r.Reason)))
	}
	return strings.Join(lines, "\n")
}

// QuizHistory renders recorded quiz attempts in the order given.
func QuizHistory(records []store.QuizAttemptRecord) string {
	if len(records) == 0 {
		return theme.Hint.Render("No quiz attempts recorded yet.")
	}
	lines := []string{layout.RenderSection("Quiz History")}
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("  %s  %-32s  %s",
			theme.Subtitle.Render(r.Timestamp.Local().Format(timeLayout)),
			r.QuizTitle,
			scoreText(r.Score, r.Total)))
	}
	return strings.Join(lines, "\n")
}

// Answer renders a chatbot answer in a card.
func Answer(question, answer string) string {
	q := theme.Subtitle.Render("Q: " + question)
	return q + "\n" + layout.RenderCard(theme.Body.Render(answer))
}

func scoreText(score, total int) string {
	s := fmt.Sprintf("%d/%d", score, total)
	if total > 0 && score == total {
		return theme.Correct.Render(s)
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(s)
}

// Hint renders a dim instruction line.
func Hint(s string) string {
	return theme.Hint.Render(s)
}
