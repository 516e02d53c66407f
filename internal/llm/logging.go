package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rsuresh/quizcraft/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as a coach
// event for usage accounting.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps a Provider with event logging. provider names the
// backend ("anthropic", "openai", "gemini") in the log.
func WithLogging(p Provider, provider string, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.CoachEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   req.Purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.events.AppendCoachEvent(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log coach event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
