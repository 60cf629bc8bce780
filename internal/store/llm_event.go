package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type llmRequestRow struct {
	ID           int    `db:"id"`
	Sequence     int64  `db:"sequence"`
	Timestamp    int64  `db:"timestamp"`
	Provider     string `db:"provider"`
	Model        string `db:"model"`
	Purpose      string `db:"purpose"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	LatencyMs    int64  `db:"latency_ms"`
	Success      bool   `db:"success"`
	ErrorMessage string `db:"error_message"`
	RequestBody  string `db:"request_body"`
	ResponseBody string `db:"response_body"`
}

func (row llmRequestRow) record() LLMRequestRecord {
	return LLMRequestRecord{
		LLMRequestEventData: LLMRequestEventData{
			Provider:     row.Provider,
			Model:        row.Model,
			Purpose:      row.Purpose,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			LatencyMs:    row.LatencyMs,
			Success:      row.Success,
			ErrorMessage: row.ErrorMessage,
			RequestBody:  row.RequestBody,
			ResponseBody: row.ResponseBody,
		},
		ID:        row.ID,
		Sequence:  row.Sequence,
		Timestamp: fromMillis(row.Timestamp),
	}
}

const llmRequestColumns = `id, sequence, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO llm_requests (
		sequence, timestamp, provider, model, purpose, input_tokens,
		output_tokens, latency_ms, success, error_message, request_body,
		response_body
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, ts, data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	query, args := buildQuery(llmRequestColumns, "llm_requests", opts)

	var rows []llmRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	records := make([]LLMRequestRecord, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error) {
	var row llmRequestRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+llmRequestColumns+` FROM llm_requests WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	rec := row.record()
	return &rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageByPurpose, error) {
	var rows []struct {
		Purpose      string `db:"purpose"`
		Calls        int    `db:"calls"`
		InputTokens  int    `db:"input_tokens"`
		OutputTokens int    `db:"output_tokens"`
		AvgLatencyMs int64  `db:"avg_latency_ms"`
	}
	err := r.db.SelectContext(ctx, &rows, `SELECT
		purpose,
		COUNT(*) AS calls,
		COALESCE(SUM(input_tokens), 0) AS input_tokens,
		COALESCE(SUM(output_tokens), 0) AS output_tokens,
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER) AS avg_latency_ms
	FROM llm_requests
	GROUP BY purpose
	ORDER BY calls DESC, purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}

	out := make([]LLMUsageByPurpose, len(rows))
	for i, row := range rows {
		out[i] = LLMUsageByPurpose(row)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsageByModel, error) {
	var rows []struct {
		Model        string `db:"model"`
		Calls        int    `db:"calls"`
		InputTokens  int    `db:"input_tokens"`
		OutputTokens int    `db:"output_tokens"`
	}
	err := r.db.SelectContext(ctx, &rows, `SELECT
		model,
		COUNT(*) AS calls,
		COALESCE(SUM(input_tokens), 0) AS input_tokens,
		COALESCE(SUM(output_tokens), 0) AS output_tokens
	FROM llm_requests
	GROUP BY model
	ORDER BY calls DESC, model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}

	out := make([]LLMUsageByModel, len(rows))
	for i, row := range rows {
		out[i] = LLMUsageByModel(row)
	}
	return out, nil
}
