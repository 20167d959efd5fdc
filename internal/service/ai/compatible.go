package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs.
// This supports services like OpenRouter, Azure OpenAI, Ollama, etc.
type CompatibleProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, temperature float64) (*CompatibleProvider, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &CompatibleProvider{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Verify lists models. Many compatible servers do not implement the single-model lookup.
func (p *CompatibleProvider) Verify(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return ClassifyError(err)
	}
	return nil
}

// Name returns the provider name.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

// Complete generates a response without streaming.
func (p *CompatibleProvider) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    chatMessages(systemPrompt, prompt),
		Temperature: openai.Float(p.temperature),
	}

	return createChatCompletion(ctx, p.client, params)
}
