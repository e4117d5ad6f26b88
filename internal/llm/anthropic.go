package llm

import (
	"context"
	"strings"
	"sync"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// anthropicProvider implements Provider on the official anthropic-sdk-go.
// The Messages API is stateless, so conversations replay their history on
// every turn.
type anthropicProvider struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
	limiter     *rate.Limiter
}

func newAnthropicProvider(opts Options) *anthropicProvider {
	return &anthropicProvider{
		client: sdk.NewClient(
			option.WithAPIKey(opts.APIKey),
		),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		limiter:     newLimiter(opts.RequestsPerMinute),
	}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

func (p *anthropicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	reply, err := p.complete(ctx, []sdk.MessageParam{
		sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: generate")
	}
	return reply, nil
}

func (p *anthropicProvider) NewConversation(_ context.Context) (Conversation, error) {
	return &anthropicConversation{provider: p}, nil
}

// complete issues one Messages API call and flattens the text blocks.
func (p *anthropicProvider) complete(ctx context.Context, messages []sdk.MessageParam) (string, error) {
	if err := waitLimiter(ctx, p.limiter); err != nil {
		return "", err
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages:  messages,
	}
	if p.temperature > 0 {
		params.Temperature = sdk.Float(p.temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// anthropicConversation accumulates the turn history client-side. A failed
// turn is rolled back so the replayed history only ever contains completed
// exchanges.
type anthropicConversation struct {
	provider *anthropicProvider

	mu      sync.Mutex
	history []sdk.MessageParam
}

func (c *anthropicConversation) Send(ctx context.Context, message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	attempt := append(c.history, sdk.NewUserMessage(sdk.NewTextBlock(message)))

	reply, err := c.provider.complete(ctx, attempt)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: conversation send")
	}

	c.history = append(attempt, sdk.NewAssistantMessage(sdk.NewTextBlock(reply)))
	return reply, nil
}
