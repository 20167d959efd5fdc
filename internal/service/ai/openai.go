package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Provider for OpenAI API.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, baseURL, model string, temperature float64) (*OpenAIProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Verify fetches the configured model's metadata.
func (p *OpenAIProvider) Verify(ctx context.Context) error {
	if _, err := p.client.Models.Get(ctx, p.model); err != nil {
		return ClassifyError(err)
	}
	return nil
}

// isReasoningModel checks if the model rejects a custom temperature.
// Covers: o1, o3, o4, gpt-5 series
func (p *OpenAIProvider) isReasoningModel() bool {
	model := strings.ToLower(p.model)
	return strings.HasPrefix(model, "o1") ||
		strings.HasPrefix(model, "o3") ||
		strings.HasPrefix(model, "o4") ||
		strings.HasPrefix(model, "gpt-5")
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Complete generates a response without streaming.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: chatMessages(systemPrompt, prompt),
	}
	if !p.isReasoningModel() {
		params.Temperature = openai.Float(p.temperature)
	}

	return createChatCompletion(ctx, p.client, params)
}

func chatMessages(systemPrompt, prompt string) []openai.ChatCompletionMessageParamUnion {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	return append(messages, openai.UserMessage(prompt))
}

func createChatCompletion(ctx context.Context, client openai.Client, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrProvider)
	}
	return resp.Choices[0].Message.Content, nil
}
