package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiProvider implements Provider on the Google GenAI SDK. Conversations
// wrap the SDK's chat handle, which keeps the turn history on the provider
// side.
type geminiProvider struct {
	client  *genai.Client
	model   string
	config  *genai.GenerateContentConfig
	limiter *rate.Limiter
}

func newGeminiProvider(ctx context.Context, opts Options) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	return &geminiProvider{
		client:  client,
		model:   opts.Model,
		config:  config,
		limiter: newLimiter(opts.RequestsPerMinute),
	}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := waitLimiter(ctx, p.limiter); err != nil {
		return "", err
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), p.config)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	return result.Text(), nil
}

func (p *geminiProvider) NewConversation(ctx context.Context) (Conversation, error) {
	chat, err := p.client.Chats.Create(ctx, p.model, p.config, nil)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create chat")
	}
	return &geminiConversation{provider: p, chat: chat}, nil
}

type geminiConversation struct {
	provider *geminiProvider
	chat     *genai.Chat
}

func (c *geminiConversation) Send(ctx context.Context, message string) (string, error) {
	if err := waitLimiter(ctx, c.provider.limiter); err != nil {
		return "", err
	}

	result, err := c.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", eris.Wrap(err, "gemini: send message")
	}

	return result.Text(), nil
}
