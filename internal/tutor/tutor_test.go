package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pytutor/internal/llm"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "keeps text after last marker",
			raw:  "Q: first\nA: old answer\nQ: second\nA: Use a list.",
			want: "Use a list.",
		},
		{
			name: "no marker keeps everything",
			raw:  "Use a dict.\n",
			want: "Use a dict.",
		},
		{
			name: "drops blanks and duplicates in first-seen order",
			raw:  "A:\n  x = 1  \n\nprint(x)\nx = 1\n\n  print(x)\ndone",
			want: "x = 1\nprint(x)\ndone",
		},
		{
			name: "marker only",
			raw:  "A:   \n \n",
			want: "",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.raw))
		})
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig(), nil)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Ask(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
	assert.Zero(t, mock.CallCount(), "no model call for blank questions")
}

func TestAsk_BuildsFewShotPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("A: Use len(items).\nUse len(items)."))
	svc := NewService(mock, DefaultConfig(), nil)

	answer, err := svc.Ask(context.Background(), "  How do I count list items?  ")
	require.NoError(t, err)
	assert.Equal(t, "Use len(items).", answer)

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Contains(t, req.System, "Python programming assistant")
	require.Len(t, req.Messages, 1)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Q: How do I add two variables in Python?")
	assert.True(t, strings.HasSuffix(msg, "Q: How do I count list items?\nA:"), "prompt = %q", msg)
	assert.Nil(t, req.Schema)
	assert.Equal(t, 512, req.MaxTokens)
}

func TestAsk_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultConfig(), nil)

	_, err := svc.Ask(context.Background(), "What is a tuple?")
	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "err = %v", err)
}

func TestAsk_EmptyAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("A:\n\n"))
	svc := NewService(mock, DefaultConfig(), nil)

	_, err := svc.Ask(context.Background(), "What is a tuple?")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestAsk_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 10 * time.Millisecond
	svc := NewService(slowProvider{}, cfg, nil)

	_, err := svc.Ask(context.Background(), "What is a tuple?")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsk_TagsPurpose(t *testing.T) {
	p := &purposeProvider{}
	svc := NewService(p, DefaultConfig(), nil)

	_, err := svc.Ask(context.Background(), "What is a tuple?")
	require.NoError(t, err)
	assert.Equal(t, llm.PurposeChat, p.purpose)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

type purposeProvider struct{ purpose string }

func (p *purposeProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.purpose = llm.PurposeFrom(ctx)
	return &llm.Response{Content: []byte("A tuple is immutable.")}, nil
}

func (p *purposeProvider) ModelID() string { return "purpose" }
