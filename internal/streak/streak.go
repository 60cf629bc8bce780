// Package streak derives the consecutive-day learning streak from the last
// recorded interaction.
package streak

import (
	"fmt"
	"time"

	"github.com/abhisek/pytutor/internal/calendar"
	"github.com/abhisek/pytutor/internal/store"
)

// ParseError reports a last-interaction value in neither supported layout.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized last interaction time %q", e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Outcome names what Update did to the streak.
type Outcome string

const (
	OutcomeSameDay    Outcome = "same-day"
	OutcomeIncrement  Outcome = "increment"
	OutcomeReset      Outcome = "reset"
	OutcomeUnreadable Outcome = "unreadable"
)

// Result describes one streak update.
type Result struct {
	Previous int
	Current  int
	Outcome  Outcome
}

// Changed reports whether the record was modified.
func (r Result) Changed() bool {
	return r.Outcome != OutcomeSameDay
}

// ParseLastInteraction parses a full timestamp, falling back to a bare
// date, in loc.
func ParseLastInteraction(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(calendar.TimestampLayout, value, loc)
	if err == nil {
		return t, nil
	}
	t, dateErr := time.ParseInLocation(calendar.DateLayout, value, loc)
	if dateErr == nil {
		return t, nil
	}
	return time.Time{}, &ParseError{Value: value, Err: err}
}

// Update applies one session start at now to rec and returns the new
// record. rec is not modified.
//
// On the same calendar day nothing changes. A gap of exactly one day
// extends the streak; any other gap, including a last interaction in the
// future, restarts it at 1. An unreadable last interaction is treated as
// no interaction at all: the streak restarts and the *ParseError is
// returned alongside the valid record so the caller can log it.
func Update(rec store.ProgressRecord, now time.Time) (store.ProgressRecord, Result, error) {
	res := Result{Previous: rec.StreakCount}

	last, err := ParseLastInteraction(rec.LastLearningTime, now.Location())
	switch {
	case err != nil:
		res.Outcome = OutcomeUnreadable
	case calendar.SameDay(last, now):
		res.Outcome = OutcomeSameDay
		res.Current = rec.StreakCount
		return rec, res, nil
	case calendar.DaysBetween(last, now) == 1:
		res.Outcome = OutcomeIncrement
	default:
		res.Outcome = OutcomeReset
	}

	next := rec.Clone()
	if res.Outcome == OutcomeIncrement {
		next.StreakCount = max(rec.StreakCount, 1) + 1
	} else {
		next.StreakCount = 1
	}
	next.LastLearningTime = now.Format(calendar.TimestampLayout)
	res.Current = next.StreakCount
	return next, res, err
}
