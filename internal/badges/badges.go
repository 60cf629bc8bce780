// Package badges decides which achievements a progress record has earned.
package badges

import (
	"fmt"
	"maps"
	"slices"

	"github.com/abhisek/pytutor/internal/store"
)

// percentPerfect is the perfect score for a quiz whose question count is
// unknown; such scores are read as percentages.
const percentPerfect = 100

// Catalog is the view of the content catalog the rules need.
type Catalog interface {
	// LessonCount returns the number of lessons in the catalog.
	LessonCount() int

	// HasLesson reports whether title is a catalog lesson.
	HasLesson(title string) bool

	// QuestionCount returns the number of questions in the quiz with the
	// normalized key, if known.
	QuestionCount(quizKey string) (int, bool)
}

// Award is a badge unlocked by an evaluation.
type Award struct {
	Badge  Badge
	Reason string
}

// IsPerfect reports whether score is a perfect run of the quiz with key.
func IsPerfect(cat Catalog, quizKey string, score int) bool {
	if n, ok := cat.QuestionCount(quizKey); ok && n > 0 {
		return score >= n
	}
	return score >= percentPerfect
}

type rule struct {
	badge Badge
	check func(rec store.ProgressRecord, cat Catalog) (string, bool)
}

var rules = []rule{
	{LessonMaster, func(rec store.ProgressRecord, cat Catalog) (string, bool) {
		total := cat.LessonCount()
		done := 0
		for _, l := range rec.CompletedLessons {
			if cat.HasLesson(l) {
				done++
			}
		}
		return fmt.Sprintf("Completed all %d lessons", total), total > 0 && done == total
	}},
	{QuizChamp, func(rec store.ProgressRecord, cat Catalog) (string, bool) {
		for _, key := range slices.Sorted(maps.Keys(rec.QuizScores)) {
			if IsPerfect(cat, key, rec.QuizScores[key]) {
				return fmt.Sprintf("Perfect score on %s", key), true
			}
		}
		return "", false
	}},
	{StreakStar, func(rec store.ProgressRecord, _ Catalog) (string, bool) {
		return fmt.Sprintf("%d-day learning streak", rec.StreakCount), rec.StreakCount >= StreakStarThreshold
	}},
}

// Evaluate applies every badge rule to rec and returns the updated record
// with the newly unlocked badges appended in rule order. Badges already
// held are never removed or re-awarded. rec is not modified.
func Evaluate(rec store.ProgressRecord, cat Catalog) (store.ProgressRecord, []Award) {
	next := rec.Clone()
	var awards []Award
	for _, r := range rules {
		if next.HasBadge(string(r.badge)) {
			continue
		}
		reason, ok := r.check(next, cat)
		if !ok {
			continue
		}
		next.Badges = append(next.Badges, string(r.badge))
		awards = append(awards, Award{Badge: r.badge, Reason: reason})
	}
	return next, awards
}
