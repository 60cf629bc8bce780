package store

import (
	"context"
	"fmt"
)

type badgeAwardRow struct {
	Sequence  int64  `db:"sequence"`
	Timestamp int64  `db:"timestamp"`
	Badge     string `db:"badge"`
	Reason    string `db:"reason"`
	SessionID string `db:"session_id"`
}

func (r *eventRepo) AppendBadgeAward(ctx context.Context, data BadgeAwardData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO badge_awards (sequence, timestamp, badge, reason, session_id) VALUES (?, ?, ?, ?, ?)`,
		seq, ts, data.Badge, data.Reason, data.SessionID)
	if err != nil {
		return fmt.Errorf("save badge award: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBadgeAwards(ctx context.Context, opts QueryOpts) ([]BadgeAwardRecord, error) {
	query, args := buildQuery("sequence, timestamp, badge, reason, session_id", "badge_awards", opts)

	var rows []badgeAwardRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query badge awards: %w", err)
	}

	records := make([]BadgeAwardRecord, len(rows))
	for i, row := range rows {
		records[i] = BadgeAwardRecord{
			BadgeAwardData: BadgeAwardData{
				Badge:     row.Badge,
				Reason:    row.Reason,
				SessionID: row.SessionID,
			},
			Sequence:  row.Sequence,
			Timestamp: fromMillis(row.Timestamp),
		}
	}
	return records, nil
}
