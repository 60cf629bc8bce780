package session

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/badges"
	"github.com/abhisek/pytutor/internal/goal"
	"github.com/abhisek/pytutor/internal/store"
)

// Report is a read-only view of the learner's progress.
type Report struct {
	StreakCount      int
	LastLearningTime string

	// Badges are in award order.
	Badges []badges.Badge

	// Lessons and Quizzes follow catalog order.
	Lessons []LessonStatus
	Quizzes []QuizStatus

	// CompletedLessons are the completed catalog lessons in catalog order.
	CompletedLessons []string

	// Goal is nil when no goal is set.
	Goal *goal.Status
}

// LessonStatus is one catalog lesson in a Report.
type LessonStatus struct {
	Title     string
	Completed bool
}

// QuizStatus is one catalog quiz in a Report.
type QuizStatus struct {
	Title  string
	Key    string
	Lesson string

	// Taken is false until a score is stored. Score is the latest score
	// and Total the quiz's question count.
	Taken bool
	Score int
	Total int

	// Unlocked reports whether the quiz's lesson is completed.
	Unlocked bool

	// Best is the highest score in the event log, when one is recorded.
	Best    int
	HasBest bool
}

// Progress reads the record without writing it and builds a Report. Best scores come from the
// event log when one is configured; a failing event log only loses them.
func (s *Service) Progress(ctx context.Context) (Report, error) {
	rec, err := s.store.Read()
	if err != nil {
		return Report{}, err
	}
	var best map[string]int
	if s.events != nil {
		best, err = s.events.BestQuizScores(ctx)
		if err != nil {
			s.log.Warn("load best quiz scores", zap.Error(err))
		}
	}
	return s.report(rec, best), nil
}

func (s *Service) report(rec store.ProgressRecord, best map[string]int) Report {
	r := Report{
		StreakCount:      rec.StreakCount,
		LastLearningTime: rec.LastLearningTime,
		Badges:           make([]badges.Badge, len(rec.Badges)),
		CompletedLessons: []string{},
	}
	for i, b := range rec.Badges {
		r.Badges[i] = badges.Badge(b)
	}

	for _, l := range s.catalog.Lessons() {
		done := rec.HasCompleted(l.Title)
		r.Lessons = append(r.Lessons, LessonStatus{Title: l.Title, Completed: done})
		if done {
			r.CompletedLessons = append(r.CompletedLessons, l.Title)
		}
	}

	for _, q := range s.catalog.Quizzes() {
		score, taken := rec.QuizScores[q.Key()]
		total, _ := s.catalog.QuestionCount(q.Key())
		b, hasBest := best[q.Key()]
		r.Quizzes = append(r.Quizzes, QuizStatus{
			Title:    q.Title,
			Key:      q.Key(),
			Lesson:   q.Lesson,
			Taken:    taken,
			Score:    score,
			Total:    total,
			Unlocked: q.Lesson == "" || rec.HasCompleted(q.Lesson),
			Best:     b,
			HasBest:  hasBest,
		})
	}

	var unknown, overLimit []string
	for key, score := range rec.QuizScores {
		if !s.catalog.IsQuizKey(key) {
			unknown = append(unknown, key)
			continue
		}
		if total, ok := s.catalog.QuestionCount(key); ok && score > total {
			overLimit = append(overLimit, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		s.log.Warn("quiz scores for unknown quizzes", zap.Strings("keys", unknown))
	}
	// Scores are reported as written, never clamped.
	if len(overLimit) > 0 {
		slices.Sort(overLimit)
		s.log.Warn("quiz scores above question count", zap.Strings("keys", overLimit))
	}

	if rec.LearningGoal != nil {
		st := goal.Evaluate(*rec.LearningGoal, rec.CompletedLessons, s.now())
		r.Goal = &st
	}
	return r
}
