package goal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pytutor/internal/store"
	"github.com/abhisek/pytutor/internal/validation"
)

var (
	now  = time.Date(2025, 1, 25, 16, 20, 0, 0, time.Local)
	plan = []string{
		"Introduction to Python",
		"Variables and Data Types",
		"Conditionals in Python",
		"Loops in Python",
		"Functions in Python",
	}
)

func TestSet_Validation(t *testing.T) {
	tests := []struct {
		days    int
		wantErr bool
	}{
		{-1, true},
		{0, true},
		{1, false},
		{14, false},
		{30, false},
		{31, true},
	}

	for _, tt := range tests {
		rec := store.DefaultRecord(now)
		got, err := Set(rec, "learn python", tt.days, now, plan)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(days=%d) error = %v, wantErr %v", tt.days, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			var vErr *validation.Error
			if !errors.As(err, &vErr) || vErr.Field != "duration" {
				t.Errorf("Set(days=%d) error = %v, want duration validation error", tt.days, err)
			}
			if got.LearningGoal != nil {
				t.Errorf("Set(days=%d) set a goal despite validation failure", tt.days)
			}
		}
	}
}

func TestSet_FourteenDays(t *testing.T) {
	rec := store.DefaultRecord(now)
	rec.CompletedLessons = []string{"Loops in Python"}

	got, err := Set(rec, "  finish the basics ", 14, now, plan)
	require.NoError(t, err)
	require.NotNil(t, got.LearningGoal)

	g := got.LearningGoal
	assert.Equal(t, "finish the basics", g.Description)
	assert.Equal(t, "2025-01-25", g.StartDate.String())
	assert.Equal(t, "2025-02-08", g.EndDate.String())
	assert.Equal(t, plan, g.LessonPlan)
	assert.Equal(t, []string{}, g.CompletedLessons)
	assert.Nil(t, rec.LearningGoal, "input record mutated")
}

func TestSet_PlanIsSnapshot(t *testing.T) {
	catalog := append([]string(nil), plan...)
	got, err := Set(store.DefaultRecord(now), "x", 5, now, catalog)
	require.NoError(t, err)

	catalog[0] = "Changed"
	assert.Equal(t, "Introduction to Python", got.LearningGoal.LessonPlan[0])
}

func TestSet_ReplacesPreviousGoal(t *testing.T) {
	first, err := Set(store.DefaultRecord(now), "first", 3, now, plan)
	require.NoError(t, err)
	second, err := Set(first, "second", 10, now, plan[:2])
	require.NoError(t, err)

	assert.Equal(t, "second", second.LearningGoal.Description)
	assert.Equal(t, plan[:2], second.LearningGoal.LessonPlan)
	assert.Equal(t, "first", first.LearningGoal.Description)
}

func goalEnding(t *testing.T, end string) store.LearningGoal {
	t.Helper()
	d, err := store.ParseDate(end)
	require.NoError(t, err)
	return store.LearningGoal{
		Description: "goal",
		StartDate:   store.NewDate(now),
		EndDate:     d,
		LessonPlan:  plan,
	}
}

func TestEvaluate_BehindSchedule(t *testing.T) {
	g := goalEnding(t, "2025-01-26")
	completed := []string{"Loops in Python", "Introduction to Python"}

	st := Evaluate(g, completed, now)

	assert.Equal(t, 1, st.DaysLeft)
	assert.Equal(t, []string{"Variables and Data Types", "Conditionals in Python", "Functions in Python"}, st.Remaining)
	assert.Equal(t, []string{"Introduction to Python", "Loops in Python"}, st.Completed)
	assert.False(t, st.OnTrack)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		end         string
		completed   []string
		wantDays    int
		wantRemain  int
		wantOnTrack bool
		wantExpired bool
	}{
		{"plenty of time", "2025-02-08", nil, 14, 5, true, false},
		{"exactly enough", "2025-01-30", nil, 5, 5, true, false},
		{"ends today", "2025-01-25", plan[:4], 0, 1, false, false},
		{"all done ends today", "2025-01-25", plan, 0, 0, true, false},
		{"expired", "2025-01-20", plan[:1], -5, 4, false, true},
		{"unknown lessons ignored", "2025-02-01", []string{"Decorators"}, 7, 5, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Evaluate(goalEnding(t, tt.end), tt.completed, now)
			if st.DaysLeft != tt.wantDays {
				t.Errorf("DaysLeft = %d, want %d", st.DaysLeft, tt.wantDays)
			}
			if len(st.Remaining) != tt.wantRemain {
				t.Errorf("len(Remaining) = %d, want %d", len(st.Remaining), tt.wantRemain)
			}
			if st.OnTrack != tt.wantOnTrack {
				t.Errorf("OnTrack = %v, want %v", st.OnTrack, tt.wantOnTrack)
			}
			if st.Expired() != tt.wantExpired {
				t.Errorf("Expired() = %v, want %v", st.Expired(), tt.wantExpired)
			}
		})
	}
}

func TestEvaluate_DaysLeftIgnoresTimeOfDay(t *testing.T) {
	g := goalEnding(t, "2025-01-26")
	day := time.Date(2025, 1, 25, 0, 0, 0, 0, time.Local)

	for _, at := range []time.Duration{0, time.Minute, 12 * time.Hour, 23*time.Hour + 59*time.Minute} {
		st := Evaluate(g, nil, day.Add(at))
		assert.Equal(t, 1, st.DaysLeft, "at %s", day.Add(at).Format(time.Kitchen))
	}
}
