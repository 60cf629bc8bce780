package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/pytutor/internal/calendar"
)

// ProgressRecord is the learner's persisted state. Field order matches the
// on-disk layout of the progress file.
type ProgressRecord struct {
	CompletedLessons []string       `json:"completed_lessons"`
	QuizScores       map[string]int `json:"quiz_scores"`

	// LastLearningTime is kept verbatim. It is either a full timestamp
	// (calendar.TimestampLayout) or a bare date (calendar.DateLayout).
	LastLearningTime string `json:"last_learning_time"`

	StreakCount int      `json:"streak_count"`
	Badges      []string `json:"badges"`

	// LearningGoal is nil when no goal is set; it is written as {}.
	LearningGoal *LearningGoal `json:"learning_goal"`
}

// LearningGoal is a time-boxed plan to finish the lessons in LessonPlan.
type LearningGoal struct {
	Description string   `json:"goal_description"`
	StartDate   Date     `json:"start_date"`
	EndDate     Date     `json:"end_date"`
	LessonPlan  []string `json:"lesson_plan"`

	// CompletedLessons is always written empty. Goal progress is derived
	// from ProgressRecord.CompletedLessons.
	CompletedLessons []string `json:"completed_lessons"`
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the calendar date of t in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(calendar.DateLayout, s, time.Local)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(calendar.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// recordJSON mirrors ProgressRecord with the goal left raw so an empty
// object can stand for "no goal".
type recordJSON struct {
	CompletedLessons []string        `json:"completed_lessons"`
	QuizScores       map[string]int  `json:"quiz_scores"`
	LastLearningTime string          `json:"last_learning_time"`
	StreakCount      int             `json:"streak_count"`
	Badges           []string        `json:"badges"`
	LearningGoal     json.RawMessage `json:"learning_goal"`
}

func (r ProgressRecord) MarshalJSON() ([]byte, error) {
	goal := json.RawMessage(`{}`)
	if r.LearningGoal != nil {
		g := *r.LearningGoal
		if g.CompletedLessons == nil {
			g.CompletedLessons = []string{}
		}
		if g.LessonPlan == nil {
			g.LessonPlan = []string{}
		}
		b, err := json.Marshal(g)
		if err != nil {
			return nil, err
		}
		goal = b
	}
	out := recordJSON{
		CompletedLessons: nonNil(r.CompletedLessons),
		QuizScores:       r.QuizScores,
		LastLearningTime: r.LastLearningTime,
		StreakCount:      r.StreakCount,
		Badges:           nonNil(r.Badges),
		LearningGoal:     goal,
	}
	if out.QuizScores == nil {
		out.QuizScores = map[string]int{}
	}
	return json.Marshal(out)
}

func (r *ProgressRecord) UnmarshalJSON(b []byte) error {
	var in recordJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*r = ProgressRecord{
		CompletedLessons: in.CompletedLessons,
		QuizScores:       in.QuizScores,
		LastLearningTime: in.LastLearningTime,
		StreakCount:      in.StreakCount,
		Badges:           in.Badges,
	}
	raw := strings.TrimSpace(string(in.LearningGoal))
	if raw == "" || raw == "null" || raw == "{}" {
		return nil
	}
	var g LearningGoal
	if err := json.Unmarshal(in.LearningGoal, &g); err != nil {
		return fmt.Errorf("learning_goal: %w", err)
	}
	r.LearningGoal = &g
	return nil
}

// DefaultRecord returns the record created on first run.
func DefaultRecord(now time.Time) ProgressRecord {
	return ProgressRecord{
		CompletedLessons: []string{},
		QuizScores:       map[string]int{},
		LastLearningTime: now.Format(calendar.TimestampLayout),
		StreakCount:      1,
		Badges:           []string{},
	}
}

// Clone returns a deep copy of r.
func (r ProgressRecord) Clone() ProgressRecord {
	out := r
	out.CompletedLessons = slices.Clone(nonNil(r.CompletedLessons))
	out.Badges = slices.Clone(nonNil(r.Badges))
	out.QuizScores = maps.Clone(r.QuizScores)
	if out.QuizScores == nil {
		out.QuizScores = map[string]int{}
	}
	if r.LearningGoal != nil {
		g := *r.LearningGoal
		g.LessonPlan = slices.Clone(g.LessonPlan)
		g.CompletedLessons = slices.Clone(g.CompletedLessons)
		out.LearningGoal = &g
	}
	return out
}

// HasCompleted reports whether lesson is in the completed set.
func (r ProgressRecord) HasCompleted(lesson string) bool {
	return slices.Contains(r.CompletedLessons, lesson)
}

// HasBadge reports whether badge has been awarded.
func (r ProgressRecord) HasBadge(badge string) bool {
	return slices.Contains(r.Badges, badge)
}

// dedupe drops repeated entries, keeping the first occurrence.
func dedupe(in []string) ([]string, bool) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, len(out) != len(in)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
