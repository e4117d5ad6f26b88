// Package llm wraps hosted text-generation providers behind a small
// provider-agnostic surface: one-shot generation for narrative analysis and
// a multi-turn conversation handle for the chat panel.
package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Provider is a hosted text-generation backend.
type Provider interface {
	// Name identifies the backing provider ("anthropic", "gemini").
	Name() string

	// Generate performs a stateless single-turn text-generation request.
	Generate(ctx context.Context, prompt string) (string, error)

	// NewConversation starts a fresh multi-turn conversation context.
	NewConversation(ctx context.Context) (Conversation, error)
}

// Conversation is one ongoing multi-turn exchange. Implementations retain
// the turn history; a fresh conversation retains nothing from earlier ones.
type Conversation interface {
	Send(ctx context.Context, message string) (string, error)
}

// Options selects and configures a provider.
type Options struct {
	Provider          string // "anthropic" or "gemini"
	APIKey            string
	Model             string
	MaxTokens         int64
	Temperature       float64
	RequestsPerMinute int
}

// New builds the configured provider. A missing API key returns (nil, nil):
// AI features are disabled, nothing else is.
func New(ctx context.Context, opts Options) (Provider, error) {
	if opts.APIKey == "" {
		zap.L().Warn("llm: no API key configured, AI features disabled",
			zap.String("provider", opts.Provider),
		)
		return nil, nil
	}

	switch opts.Provider {
	case "anthropic":
		return newAnthropicProvider(opts), nil
	case "gemini":
		return newGeminiProvider(ctx, opts)
	default:
		return nil, eris.Errorf("llm: unknown provider %q", opts.Provider)
	}
}

// newLimiter builds the client-side request limiter shared by both
// providers. Zero or negative rpm means unlimited.
func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
}

func waitLimiter(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	if err := l.Wait(ctx); err != nil {
		return eris.Wrap(err, "llm: rate limit wait")
	}
	return nil
}
