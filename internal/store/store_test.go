package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"llm_requests", "badge_awards", "quiz_attempts", "streak_updates", "global_sequence"} {
		var name string
		err := s.DB().Get(&name,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
			continue
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceSharedAcrossEventKinds(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendStreakUpdate(ctx, StreakUpdateData{Previous: 1, Current: 2}); err != nil {
		t.Fatalf("append streak: %v", err)
	}
	if err := repo.AppendBadgeAward(ctx, BadgeAwardData{Badge: "Quiz Champ"}); err != nil {
		t.Fatalf("append badge: %v", err)
	}
	if err := repo.AppendQuizAttempt(ctx, QuizAttemptData{QuizKey: "quiz:_loops", Score: 5, Total: 5}); err != nil {
		t.Fatalf("append quiz: %v", err)
	}

	streaks, _ := repo.QueryStreakUpdates(ctx, QueryOpts{})
	badges, _ := repo.QueryBadgeAwards(ctx, QueryOpts{})
	quizzes, _ := repo.QueryQuizAttempts(ctx, QueryOpts{})
	if len(streaks) != 1 || len(badges) != 1 || len(quizzes) != 1 {
		t.Fatalf("got %d streaks, %d badges, %d quizzes, want 1 each", len(streaks), len(badges), len(quizzes))
	}
	if !(streaks[0].Sequence < badges[0].Sequence && badges[0].Sequence < quizzes[0].Sequence) {
		t.Errorf("sequences not ordered: streak=%d badge=%d quiz=%d",
			streaks[0].Sequence, badges[0].Sequence, quizzes[0].Sequence)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "chat", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true, RequestBody: "[user]\nhi", ResponseBody: "hello"},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "chat", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "lesson-gen", InputTokens: 5, OutputTokens: 7, LatencyMs: 50, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Purpose != "lesson-gen" || got[0].Success {
		t.Errorf("newest event = %+v, want failed lesson-gen", got[0])
	}

	first, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "[user]\nhi" || first.ResponseBody != "hello" || !first.Success {
		t.Errorf("GetLLMEvent(1) = %+v", first)
	}

	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("GetLLMEvent(99) = %+v, want nil", missing)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	chat := byPurpose[0]
	if chat.Purpose != "chat" || chat.Calls != 2 || chat.InputTokens != 40 || chat.OutputTokens != 60 || chat.AvgLatencyMs != 200 {
		t.Errorf("chat usage = %+v", chat)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.0-flash" || byModel[0].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestQuizAttemptsAndBestScores(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	attempts := []QuizAttemptData{
		{QuizKey: "quiz:_loops", QuizTitle: "Quiz: Loops", Score: 2, Total: 5, SessionID: "a"},
		{QuizKey: "quiz:_loops", QuizTitle: "Quiz: Loops", Score: 4, Total: 5, SessionID: "a"},
		{QuizKey: "quiz:_loops", QuizTitle: "Quiz: Loops", Score: 3, Total: 5, SessionID: "b"},
		{QuizKey: "quiz:_functions", QuizTitle: "Quiz: Functions", Score: 5, Total: 5, SessionID: "b"},
	}
	for _, a := range attempts {
		if err := repo.AppendQuizAttempt(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	best, err := repo.BestQuizScores(ctx)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if best["quiz:_loops"] != 4 || best["quiz:_functions"] != 5 {
		t.Errorf("best = %v", best)
	}

	recent, err := repo.QueryQuizAttempts(ctx, QueryOpts{After: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].QuizKey != "quiz:_functions" || recent[1].Score != 3 {
		t.Errorf("recent = %+v", recent)
	}
}

func TestQueryOptsTimeRange(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		clock = base.Add(time.Duration(i) * 24 * time.Hour)
		if err := repo.AppendBadgeAward(ctx, BadgeAwardData{Badge: fmt.Sprintf("b%d", i)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryBadgeAwards(ctx, QueryOpts{
		From: base.Add(12 * time.Hour),
		To:   base.Add(36 * time.Hour),
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Badge != "b1" {
		t.Fatalf("got %+v, want only b1", got)
	}
	if !got[0].Timestamp.Equal(base.Add(24 * time.Hour)) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, base.Add(24*time.Hour))
	}
}

func TestStreakUpdates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendStreakUpdate(ctx, StreakUpdateData{Previous: 6, Current: 1, Reset: true, SessionID: "s1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := repo.QueryStreakUpdates(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	want := StreakUpdateData{Previous: 6, Current: 1, Reset: true, SessionID: "s1"}
	if got[0].StreakUpdateData != want {
		t.Errorf("got %+v, want %+v", got[0].StreakUpdateData, want)
	}
}
