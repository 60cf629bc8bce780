package store

import (
	"context"
	"fmt"
)

type quizAttemptRow struct {
	Sequence  int64  `db:"sequence"`
	Timestamp int64  `db:"timestamp"`
	QuizKey   string `db:"quiz_key"`
	QuizTitle string `db:"quiz_title"`
	Score     int    `db:"score"`
	Total     int    `db:"total"`
	SessionID string `db:"session_id"`
}

func (r *eventRepo) AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_attempts (
		sequence, timestamp, quiz_key, quiz_title, score, total, session_id
	) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seq, ts, data.QuizKey, data.QuizTitle, data.Score, data.Total, data.SessionID)
	if err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error) {
	query, args := buildQuery(
		"sequence, timestamp, quiz_key, quiz_title, score, total, session_id",
		"quiz_attempts", opts)

	var rows []quizAttemptRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}

	records := make([]QuizAttemptRecord, len(rows))
	for i, row := range rows {
		records[i] = QuizAttemptRecord{
			QuizAttemptData: QuizAttemptData{
				QuizKey:   row.QuizKey,
				QuizTitle: row.QuizTitle,
				Score:     row.Score,
				Total:     row.Total,
				SessionID: row.SessionID,
			},
			Sequence:  row.Sequence,
			Timestamp: fromMillis(row.Timestamp),
		}
	}
	return records, nil
}

func (r *eventRepo) BestQuizScores(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		QuizKey string `db:"quiz_key"`
		Best    int    `db:"best"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT quiz_key, MAX(score) AS best FROM quiz_attempts GROUP BY quiz_key`)
	if err != nil {
		return nil, fmt.Errorf("query best quiz scores: %w", err)
	}

	best := make(map[string]int, len(rows))
	for _, row := range rows {
		best[row.QuizKey] = row.Best
	}
	return best, nil
}
