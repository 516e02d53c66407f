package llm

import (
	"context"
	"fmt"

	"github.com/rsuresh/quizcraft/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// events may be nil to skip usage accounting.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	wrapped := base
	if events != nil {
		wrapped = WithLogging(wrapped, cfg.Provider, events)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from QUIZCRAFT_* variables, falling
// back to probing standard API key variables when none are set.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
