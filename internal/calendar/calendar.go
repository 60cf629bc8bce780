// Package calendar provides whole-day arithmetic on local calendar dates.
package calendar

import "time"

const (
	// DateLayout is the on-disk layout for calendar dates.
	DateLayout = "2006-01-02"

	// TimestampLayout is the on-disk layout for full local timestamps.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Day returns the calendar date of t in t's location, normalized to
// midnight UTC so that differences are exact multiples of 24h.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
// The result is negative when b falls on an earlier date than a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// AddDays returns the calendar date n days after t's date, at midnight in
// t's location.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}
