package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/schemacheck"
)

const (
	lockRetryInterval = 25 * time.Millisecond
	defaultLockWait   = 2 * time.Second
	staleLockAge      = 30 * time.Second
)

// ErrLocked is returned when another process holds the progress lock for
// longer than the configured wait.
var ErrLocked = errors.New("progress file is locked by another process")

// ProgressStore owns the progress file. It is the only component that
// reads or writes it.
type ProgressStore struct {
	path     string
	now      func() time.Time
	log      *zap.Logger
	lockWait time.Duration
}

// Option configures a ProgressStore.
type Option func(*ProgressStore)

// WithClock sets the clock used for default records.
func WithClock(now func() time.Time) Option {
	return func(s *ProgressStore) { s.now = now }
}

// WithLogger sets the logger used for repairs.
func WithLogger(l *zap.Logger) Option {
	return func(s *ProgressStore) { s.log = logging.OrNop(l) }
}

// WithLockWait sets how long Update waits for the lock file.
func WithLockWait(d time.Duration) Option {
	return func(s *ProgressStore) { s.lockWait = d }
}

// NewProgressStore returns a store for the progress file at path.
func NewProgressStore(path string, opts ...Option) *ProgressStore {
	s := &ProgressStore{
		path:     path,
		now:      time.Now,
		log:      zap.NewNop(),
		lockWait: defaultLockWait,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the progress file path.
func (s *ProgressStore) Path() string {
	return s.path
}

// Load reads the progress file. An absent file yields a default record,
// which is persisted. Missing keys are backfilled from the defaults and
// the repaired record is persisted. A file that exists but cannot be read
// or does not match the progress schema yields a *StorageError and is left
// untouched. Callers that may race with Update should use Read or Update.
func (s *ProgressStore) Load() (ProgressRecord, error) {
	rec, repaired, exists, err := s.read()
	if err != nil {
		return ProgressRecord{}, err
	}
	switch {
	case !exists:
		s.log.Info("creating progress file", zap.String("path", s.path))
	case len(repaired) > 0:
		s.log.Info("repaired progress file",
			zap.String("path", s.path),
			zap.Strings("fields", repaired))
	default:
		return rec, nil
	}
	if err := s.Save(rec); err != nil {
		return ProgressRecord{}, err
	}
	return rec, nil
}

// Read returns the record Load would return without writing anything.
// An absent file yields the default record and stays absent.
func (s *ProgressStore) Read() (ProgressRecord, error) {
	rec, _, _, err := s.read()
	return rec, err
}

func (s *ProgressStore) read() (ProgressRecord, []string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultRecord(s.now()), nil, false, nil
	}
	if err != nil {
		return ProgressRecord{}, nil, true, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	rec, repaired, err := s.decode(data)
	if err != nil {
		return ProgressRecord{}, nil, true, &StorageError{Op: "load", Path: s.path, Err: err}
	}
	return rec, repaired, true, nil
}

// decode validates and parses a progress document, returning the names of
// the fields that had to be backfilled or repaired.
func (s *ProgressStore) decode(data []byte) (ProgressRecord, []string, error) {
	if err := schemacheck.Validate(progressSchemaName, progressSchema, data); err != nil {
		return ProgressRecord{}, nil, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return ProgressRecord{}, nil, err
	}
	var rec ProgressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ProgressRecord{}, nil, err
	}

	defaults := DefaultRecord(s.now())
	var repaired []string
	backfill := func(key string, apply func()) {
		if _, ok := keys[key]; !ok {
			apply()
			repaired = append(repaired, key)
		}
	}
	backfill("completed_lessons", func() { rec.CompletedLessons = defaults.CompletedLessons })
	backfill("quiz_scores", func() { rec.QuizScores = defaults.QuizScores })
	backfill("last_learning_time", func() { rec.LastLearningTime = defaults.LastLearningTime })
	backfill("streak_count", func() { rec.StreakCount = defaults.StreakCount })
	backfill("badges", func() { rec.Badges = defaults.Badges })
	backfill("learning_goal", func() { rec.LearningGoal = nil })

	if rec.StreakCount < 1 {
		rec.StreakCount = 1
		repaired = append(repaired, "streak_count")
	}
	var dup bool
	if rec.CompletedLessons, dup = dedupe(nonNil(rec.CompletedLessons)); dup {
		repaired = append(repaired, "completed_lessons")
	}
	if rec.Badges, dup = dedupe(nonNil(rec.Badges)); dup {
		repaired = append(repaired, "badges")
	}
	if rec.QuizScores == nil {
		rec.QuizScores = map[string]int{}
	}
	return rec, repaired, nil
}

// Save writes rec to a temporary file in the same directory and renames it
// over the progress file, so readers see either the old or the new record.
func (s *ProgressStore) Save(rec ProgressRecord) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err := EnsureDir(s.path); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*.tmp")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Update runs one read-modify-write cycle under the progress lock. fn
// receives a copy of the current record; if it returns an error nothing is
// written. The record returned is the one persisted.
func (s *ProgressStore) Update(fn func(rec *ProgressRecord) error) (ProgressRecord, error) {
	unlock, err := s.lock()
	if err != nil {
		return ProgressRecord{}, err
	}
	defer unlock()

	current, err := s.Load()
	if err != nil {
		return ProgressRecord{}, err
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return current, err
	}
	if err := s.Save(next); err != nil {
		return current, err
	}
	return next, nil
}

// lock takes the advisory lock file next to the progress file. A lock
// older than staleLockAge is assumed abandoned and removed.
func (s *ProgressStore) lock() (func(), error) {
	if err := EnsureDir(s.path); err != nil {
		return nil, &StorageError{Op: "lock", Path: s.path, Err: err}
	}
	lockPath := s.path + ".lock"
	deadline := time.Now().Add(s.lockWait)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, &StorageError{Op: "lock", Path: s.path, Err: err}
		}

		if info, statErr := os.Stat(lockPath); statErr == nil && time.Since(info.ModTime()) > staleLockAge {
			s.log.Warn("removing stale progress lock", zap.String("path", lockPath))
			os.Remove(lockPath)
			continue
		}
		if time.Now().After(deadline) {
			return nil, &StorageError{Op: "lock", Path: s.path, Err: ErrLocked}
		}
		time.Sleep(lockRetryInterval)
	}
}
