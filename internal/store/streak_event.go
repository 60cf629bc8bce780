package store

import (
	"context"
	"fmt"
)

type streakUpdateRow struct {
	Sequence  int64  `db:"sequence"`
	Timestamp int64  `db:"timestamp"`
	Previous  int    `db:"previous_count"`
	Current   int    `db:"current_count"`
	Reset     bool   `db:"reset"`
	SessionID string `db:"session_id"`
}

func (r *eventRepo) AppendStreakUpdate(ctx context.Context, data StreakUpdateData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO streak_updates (
		sequence, timestamp, previous_count, current_count, reset, session_id
	) VALUES (?, ?, ?, ?, ?, ?)`,
		seq, ts, data.Previous, data.Current, data.Reset, data.SessionID)
	if err != nil {
		return fmt.Errorf("save streak update: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryStreakUpdates(ctx context.Context, opts QueryOpts) ([]StreakUpdateRecord, error) {
	query, args := buildQuery(
		"sequence, timestamp, previous_count, current_count, reset, session_id",
		"streak_updates", opts)

	var rows []streakUpdateRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query streak updates: %w", err)
	}

	records := make([]StreakUpdateRecord, len(rows))
	for i, row := range rows {
		records[i] = StreakUpdateRecord{
			StreakUpdateData: StreakUpdateData{
				Previous:  row.Previous,
				Current:   row.Current,
				Reset:     row.Reset,
				SessionID: row.SessionID,
			},
			Sequence:  row.Sequence,
			Timestamp: fromMillis(row.Timestamp),
		}
	}
	return records, nil
}
