package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/store"
)

type recordingLLMRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingLLMRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingLLMRepo{}
	var buf bytes.Buffer
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage("A: print('hi')"),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, ProviderGemini, repo, logging.NewWriter(&buf, zapcore.InfoLevel))

	ctx := WithPurpose(context.Background(), PurposeChat)
	_, err := p.Generate(ctx, Request{
		System:   "You are a Python assistant.",
		Messages: []Message{{Role: RoleUser, Content: "How do I print?"}},
	})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, ProviderGemini, ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, PurposeChat, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, "A: print('hi')", ev.ResponseBody)
	assert.Contains(t, ev.RequestBody, "[system]\nYou are a Python assistant.")
	assert.Contains(t, ev.RequestBody, "[user]\nHow do I print?")

	assert.Contains(t, buf.String(), `"msg":"llm request"`)
	assert.Contains(t, buf.String(), `"purpose":"chat"`)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingLLMRepo{}
	var buf bytes.Buffer
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("dns")}})
	p := WithLogging(mock, ProviderOpenAI, repo, logging.NewWriter(&buf, zapcore.InfoLevel))

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Contains(t, repo.events[0].ErrorMessage, "dns")
	assert.Equal(t, "unknown", repo.events[0].Purpose)
	assert.Contains(t, buf.String(), "llm request failed")
}

func TestLoggingProvider_EventLogErrorIsNotFatal(t *testing.T) {
	repo := &recordingLLMRepo{err: errors.New("disk full")}
	var buf bytes.Buffer
	p := WithLogging(NewMockProvider(TextResponse("ok")), ProviderMock, repo, logging.NewWriter(&buf, zapcore.InfoLevel))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.True(t, strings.Contains(buf.String(), "disk full"))
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(TextResponse("ok")), ProviderMock, nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestSerializeRequest_IncludesSchema(t *testing.T) {
	out := serializeRequest(Request{
		Messages: []Message{{Role: RoleUser, Content: "make a quiz"}},
		Schema:   personSchema(),
	})
	assert.Contains(t, out, "[user]\nmake a quiz")
	assert.Contains(t, out, "[schema: test-person]")
}
