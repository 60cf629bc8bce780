// Package goal creates learning goals and measures progress against them.
package goal

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/pytutor/internal/calendar"
	"github.com/abhisek/pytutor/internal/store"
	"github.com/abhisek/pytutor/internal/validation"
)

const (
	MinDays = 1
	MaxDays = 30
)

// Status is a goal measured at a point in time.
type Status struct {
	Goal store.LearningGoal

	// Completed and Remaining partition the lesson plan, in plan order.
	Completed []string
	Remaining []string

	// DaysLeft is the number of calendar days from today's date to the end
	// date, ignoring the time of day: a goal ending tomorrow has 1 day left
	// at any hour today, not 0 as elapsed 24-hour periods would give. It is
	// negative once the goal has expired.
	DaysLeft int

	// OnTrack holds when at least one day is left per remaining lesson.
	OnTrack bool
}

// Expired reports whether the end date has passed.
func (s Status) Expired() bool {
	return s.DaysLeft < 0
}

// Done reports whether every planned lesson is complete.
func (s Status) Done() bool {
	return len(s.Remaining) == 0
}

// Validate checks a goal duration without touching any state.
func Validate(days int) error {
	if days < MinDays || days > MaxDays {
		return validation.Errorf("duration", "must be between %d and %d days, got %d", MinDays, MaxDays, days)
	}
	return nil
}

// Set returns rec with a new goal that starts on now's date and ends days
// later. plan is the full lesson catalog in order and is copied into the
// goal. Any previous goal is replaced. rec is not modified.
func Set(rec store.ProgressRecord, description string, days int, now time.Time, plan []string) (store.ProgressRecord, error) {
	if err := Validate(days); err != nil {
		return rec, err
	}

	next := rec.Clone()
	next.LearningGoal = &store.LearningGoal{
		Description:      strings.TrimSpace(description),
		StartDate:        store.NewDate(now),
		EndDate:          store.NewDate(calendar.AddDays(now, days)),
		LessonPlan:       slices.Clone(plan),
		CompletedLessons: []string{},
	}
	return next, nil
}

// Evaluate measures g against the learner's completed lessons at now.
func Evaluate(g store.LearningGoal, completed []string, now time.Time) Status {
	done := make(map[string]bool, len(completed))
	for _, l := range completed {
		done[l] = true
	}

	st := Status{
		Goal:      g,
		Completed: []string{},
		Remaining: []string{},
		DaysLeft:  calendar.DaysBetween(now, g.EndDate.Time),
	}
	for _, l := range g.LessonPlan {
		if done[l] {
			st.Completed = append(st.Completed, l)
		} else {
			st.Remaining = append(st.Remaining, l)
		}
	}
	st.OnTrack = st.DaysLeft >= len(st.Remaining)
	return st
}
