package calendar

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	loc := time.FixedZone("test", 5*3600)
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", time.Date(2025, 3, 10, 9, 0, 0, 0, loc), time.Date(2025, 3, 10, 9, 0, 0, 0, loc), 0},
		{"same day late", time.Date(2025, 3, 10, 0, 1, 0, 0, loc), time.Date(2025, 3, 10, 23, 59, 0, 0, loc), 0},
		{"next day short gap", time.Date(2025, 3, 10, 23, 59, 0, 0, loc), time.Date(2025, 3, 11, 0, 1, 0, 0, loc), 1},
		{"two days", time.Date(2025, 3, 10, 8, 0, 0, 0, loc), time.Date(2025, 3, 12, 7, 0, 0, 0, loc), 2},
		{"backwards", time.Date(2025, 3, 12, 8, 0, 0, 0, loc), time.Date(2025, 3, 10, 8, 0, 0, 0, loc), -2},
		{"month boundary", time.Date(2025, 2, 28, 12, 0, 0, 0, loc), time.Date(2025, 3, 1, 12, 0, 0, 0, loc), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2025-03-09 is the spring-forward date in New York.
	a := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	b := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	if got := DaysBetween(a, b); got != 2 {
		t.Errorf("DaysBetween across DST = %d, want 2", got)
	}
}

func TestAddDays(t *testing.T) {
	start := time.Date(2025, 1, 25, 17, 30, 0, 0, time.Local)
	got := AddDays(start, 14)
	if got.Format(DateLayout) != "2025-02-08" {
		t.Errorf("AddDays = %s, want 2025-02-08", got.Format(DateLayout))
	}
	if !SameDay(got, time.Date(2025, 2, 8, 23, 0, 0, 0, time.Local)) {
		t.Error("expected AddDays result to be on 2025-02-08")
	}
}
