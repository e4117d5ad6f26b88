package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finlens/finlens/internal/llm"
	"github.com/finlens/finlens/internal/narrative"
)

// initProvider builds the configured LLM provider; nil means AI features
// are disabled and everything else still works.
func initProvider(ctx context.Context) (llm.Provider, error) {
	provider, err := llm.New(ctx, llm.Options{
		Provider:          cfg.LLM.Provider,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.ResolvedModel(),
		MaxTokens:         cfg.LLM.MaxTokens,
		Temperature:       cfg.LLM.Temperature,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init llm provider")
	}

	if provider != nil {
		zap.L().Info("llm provider ready",
			zap.String("provider", provider.Name()),
			zap.String("model", cfg.LLM.ResolvedModel()),
		)
	}
	return provider, nil
}

// initNarrative builds the narrative service with configured or default
// prompts.
func initNarrative(provider llm.Provider) (*narrative.Service, error) {
	prompts := narrative.DefaultPrompts()
	if cfg.Narrative.PromptFile != "" {
		p, err := narrative.LoadPrompts(cfg.Narrative.PromptFile)
		if err != nil {
			return nil, eris.Wrap(err, "load prompts")
		}
		prompts = p
	}

	svc, err := narrative.NewService(provider, prompts)
	if err != nil {
		return nil, eris.Wrap(err, "init narrative service")
	}
	return svc, nil
}
