package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/store"
)

// NewProvider creates the configured Provider wrapped with timeout, retry
// and logging middleware. events may be nil.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo, log *zap.Logger) (Provider, error) {
	log = logging.OrNop(log)
	if !cfg.ResolveProvider() {
		return nil, cfg.Validate()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	log.Debug("llm provider ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", base.ModelID()))

	// caller → timeout → retry → logging → base
	logged := WithLogging(base, cfg.Provider, events, log)
	retried := WithRetry(logged, cfg.Retry, log)
	return WithTimeout(retried, cfg.Timeout), nil
}
