// Package session runs learner actions against the progress record. Each
// action is one locked read-evaluate-persist cycle on the progress file;
// events are appended to the event log after the record is saved.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/badges"
	"github.com/abhisek/pytutor/internal/catalog"
	"github.com/abhisek/pytutor/internal/goal"
	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/quiz"
	"github.com/abhisek/pytutor/internal/store"
	"github.com/abhisek/pytutor/internal/streak"
)

// ErrLessonNotCompleted is returned when a quiz is opened before its
// lesson is completed.
var ErrLessonNotCompleted = errors.New("lesson not completed")

// Deps are the collaborators of a Service.
type Deps struct {
	Store   *store.ProgressStore
	Catalog *catalog.Catalog

	// Events is optional.
	Events store.EventRepo

	// Logger and Clock default to a no-op logger and time.Now.
	Logger *zap.Logger
	Clock  func() time.Time
}

// Service applies learner actions to the progress record.
type Service struct {
	store   *store.ProgressStore
	catalog *catalog.Catalog
	badges  *badges.Service
	events  store.EventRepo
	log     *zap.Logger
	now     func() time.Time
	id      string
}

// NewService creates a Service with a fresh session ID.
func NewService(d Deps) *Service {
	log := logging.OrNop(d.Logger)
	now := d.Clock
	if now == nil {
		now = time.Now
	}
	id := uuid.NewString()
	return &Service{
		store:   d.Store,
		catalog: d.Catalog,
		badges:  badges.NewService(d.Catalog, d.Events, log),
		events:  d.Events,
		log:     log.With(zap.String("session_id", id)),
		now:     now,
		id:      id,
	}
}

// ID returns the session ID attached to recorded events.
func (s *Service) ID() string {
	return s.id
}

// StartResult reports what happened when a session began.
type StartResult struct {
	Record    store.ProgressRecord
	Streak    streak.Result
	NewBadges []badges.Award
}

// Start updates the streak for today and re-evaluates badges, persisting
// both with a single save. An unreadable last learning time is logged and
// restarts the streak.
func (s *Service) Start(ctx context.Context) (StartResult, error) {
	now := s.now()
	var res StartResult

	rec, err := s.store.Update(func(rec *store.ProgressRecord) error {
		next, sr, parseErr := streak.Update(*rec, now)
		if parseErr != nil {
			s.log.Warn("unreadable last learning time, streak reset",
				zap.String("value", rec.LastLearningTime),
				zap.Error(parseErr))
		}
		next, res.NewBadges = badges.Evaluate(next, s.catalog)
		res.Streak = sr
		*rec = next
		return nil
	})
	if err != nil {
		return StartResult{}, fmt.Errorf("start session: %w", err)
	}
	res.Record = rec

	s.log.Info("session started",
		zap.String("streak_outcome", string(res.Streak.Outcome)),
		zap.Int("streak_count", rec.StreakCount))
	if res.Streak.Changed() && s.events != nil {
		err := s.events.AppendStreakUpdate(ctx, store.StreakUpdateData{
			Previous:  res.Streak.Previous,
			Current:   res.Streak.Current,
			Reset:     res.Streak.Outcome != streak.OutcomeIncrement,
			SessionID: s.id,
		})
		if err != nil {
			s.log.Warn("record streak update", zap.Error(err))
		}
	}
	s.badges.Record(ctx, res.NewBadges, s.id)
	return res, nil
}

// LessonResult reports the outcome of completing a lesson.
type LessonResult struct {
	Record           store.ProgressRecord
	AlreadyCompleted bool
	NewBadges        []badges.Award
}

// CompleteLesson marks a catalog lesson as completed. Completing a lesson
// twice is not an error.
func (s *Service) CompleteLesson(ctx context.Context, title string) (LessonResult, error) {
	d, err := s.catalog.FindLesson(title)
	if err != nil {
		return LessonResult{}, err
	}

	var res LessonResult
	rec, err := s.store.Update(func(rec *store.ProgressRecord) error {
		if rec.HasCompleted(d.Title) {
			res.AlreadyCompleted = true
		} else {
			rec.CompletedLessons = append(rec.CompletedLessons, d.Title)
		}
		*rec, res.NewBadges = badges.Evaluate(*rec, s.catalog)
		return nil
	})
	if err != nil {
		return LessonResult{}, fmt.Errorf("complete lesson: %w", err)
	}
	res.Record = rec

	if !res.AlreadyCompleted {
		s.log.Info("lesson completed", zap.String("lesson", d.Title))
	}
	s.badges.Record(ctx, res.NewBadges, s.id)
	return res, nil
}

// LoadLesson returns the document of a catalog lesson.
func (s *Service) LoadLesson(title string) (catalog.Lesson, error) {
	return s.catalog.LoadLesson(title)
}

// OpenQuiz loads a quiz after checking that its lesson is completed. It
// does not modify the record.
func (s *Service) OpenQuiz(title string) (quiz.Quiz, error) {
	d, err := s.catalog.FindQuiz(title)
	if err != nil {
		return quiz.Quiz{}, err
	}
	rec, err := s.store.Read()
	if err != nil {
		return quiz.Quiz{}, err
	}
	if err := checkUnlocked(rec, d); err != nil {
		return quiz.Quiz{}, err
	}
	return s.catalog.LoadQuiz(d.Title)
}

func checkUnlocked(rec store.ProgressRecord, d catalog.QuizDescriptor) error {
	if d.Lesson != "" && !rec.HasCompleted(d.Lesson) {
		return fmt.Errorf("%w: complete %q before taking %q", ErrLessonNotCompleted, d.Lesson, d.Title)
	}
	return nil
}

// QuizResult is a graded quiz.
type QuizResult struct {
	Title     string
	Key       string
	Score     int
	Total     int
	Feedback  string
	NewBadges []badges.Award
	Record    store.ProgressRecord
}

// SubmitQuiz grades answers for the quiz title and stores the score under
// the quiz's normalized key, replacing any earlier score. The quiz's
// lesson must be completed. Nothing is written when the answers are
// rejected.
func (s *Service) SubmitQuiz(ctx context.Context, title string, answers []string) (QuizResult, error) {
	d, err := s.catalog.FindQuiz(title)
	if err != nil {
		return QuizResult{}, err
	}
	q, err := s.catalog.LoadQuiz(d.Title)
	if err != nil {
		return QuizResult{}, err
	}

	res := QuizResult{Title: d.Title, Key: d.Key(), Total: len(q.Questions)}
	rec, err := s.store.Update(func(rec *store.ProgressRecord) error {
		if err := checkUnlocked(*rec, d); err != nil {
			return err
		}
		score, err := quiz.Score(q.Questions, answers)
		if err != nil {
			return err
		}
		res.Score = score
		rec.QuizScores[res.Key] = score
		*rec, res.NewBadges = badges.Evaluate(*rec, s.catalog)
		return nil
	})
	if err != nil {
		return QuizResult{}, fmt.Errorf("submit quiz: %w", err)
	}
	res.Record = rec
	res.Feedback = quiz.Feedback(res.Score, res.Total)

	s.log.Info("quiz graded",
		zap.String("quiz", res.Key),
		zap.Int("score", res.Score),
		zap.Int("total", res.Total))
	if s.events != nil {
		err := s.events.AppendQuizAttempt(ctx, store.QuizAttemptData{
			QuizKey:   res.Key,
			QuizTitle: res.Title,
			Score:     res.Score,
			Total:     res.Total,
			SessionID: s.id,
		})
		if err != nil {
			s.log.Warn("record quiz attempt", zap.Error(err))
		}
	}
	s.badges.Record(ctx, res.NewBadges, s.id)
	return res, nil
}

// SetGoal replaces the learning goal with one covering the whole catalog
// over days days, starting today.
func (s *Service) SetGoal(ctx context.Context, description string, days int) (goal.Status, error) {
	if err := goal.Validate(days); err != nil {
		return goal.Status{}, err
	}
	now := s.now()

	rec, err := s.store.Update(func(rec *store.ProgressRecord) error {
		next, err := goal.Set(*rec, description, days, now, s.catalog.LessonTitles())
		if err != nil {
			return err
		}
		*rec = next
		return nil
	})
	if err != nil {
		return goal.Status{}, fmt.Errorf("set goal: %w", err)
	}

	st := goal.Evaluate(*rec.LearningGoal, rec.CompletedLessons, now)
	s.log.Info("learning goal set",
		zap.Int("days", days),
		zap.String("end_date", rec.LearningGoal.EndDate.String()))
	return st, nil
}
