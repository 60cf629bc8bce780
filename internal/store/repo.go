package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMUsageByPurpose aggregates token usage for one purpose.
type LLMUsageByPurpose struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByModel aggregates token usage for one model.
type LLMUsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// BadgeAwardData captures a badge being unlocked.
type BadgeAwardData struct {
	Badge     string
	Reason    string
	SessionID string
}

// BadgeAwardRecord is a stored badge award.
type BadgeAwardRecord struct {
	BadgeAwardData
	Sequence  int64
	Timestamp time.Time
}

// QuizAttemptData captures one graded quiz submission.
type QuizAttemptData struct {
	QuizKey   string
	QuizTitle string
	Score     int
	Total     int
	SessionID string
}

// QuizAttemptRecord is a stored quiz attempt.
type QuizAttemptRecord struct {
	QuizAttemptData
	Sequence  int64
	Timestamp time.Time
}

// StreakUpdateData captures a change to the streak counter.
type StreakUpdateData struct {
	Previous  int
	Current   int
	Reset     bool
	SessionID string
}

// StreakUpdateRecord is a stored streak update.
type StreakUpdateRecord struct {
	StreakUpdateData
	Sequence  int64
	Timestamp time.Time
}

// LLMEventRepo records LLM calls.
type LLMEventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// LLMHistoryRepo reads back recorded LLM calls.
type LLMHistoryRepo interface {
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMEvent returns the event with id, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageByPurpose, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsageByModel, error)
}

// BadgeEventRepo records and lists badge awards.
type BadgeEventRepo interface {
	AppendBadgeAward(ctx context.Context, data BadgeAwardData) error
	QueryBadgeAwards(ctx context.Context, opts QueryOpts) ([]BadgeAwardRecord, error)
}

// QuizEventRepo records and lists quiz attempts.
type QuizEventRepo interface {
	AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error
	QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error)

	// BestQuizScores returns the highest recorded score per quiz key.
	BestQuizScores(ctx context.Context) (map[string]int, error)
}

// StreakEventRepo records and lists streak changes.
type StreakEventRepo interface {
	AppendStreakUpdate(ctx context.Context, data StreakUpdateData) error
	QueryStreakUpdates(ctx context.Context, opts QueryOpts) ([]StreakUpdateRecord, error)
}

// EventRepo provides append and query access to every event kind.
type EventRepo interface {
	LLMEventRepo
	LLMHistoryRepo
	BadgeEventRepo
	QuizEventRepo
	StreakEventRepo
}
