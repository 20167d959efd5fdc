package ai

//go:generate mockgen -source=provider.go -destination=mock/provider.go -package=mock

import (
	"context"
	"errors"
)

// Provider defines the interface for AI providers.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Verify checks the credential with a lightweight model metadata call.
	Verify(ctx context.Context) error
	// Complete sends one system message and one user message and returns the reply text.
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Config holds the configuration for an AI provider.
type Config struct {
	Provider    string // openai, anthropic, compatible
	APIKey      string
	BaseURL     string // optional for openai, required for compatible
	Model       string
	Temperature float64
	MaxTokens   int // anthropic only
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2048
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
)

// Factory builds a Provider from a Config. NewProvider is the production factory.
type Factory func(cfg Config) (Provider, error)

// NewProvider creates a new AI provider based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature)
	default:
		return nil, ErrInvalidProvider
	}
}

// IsValidProvider reports whether name is a supported provider type.
func IsValidProvider(name string) bool {
	switch name {
	case ProviderOpenAI, ProviderAnthropic, ProviderCompatible:
		return true
	}
	return false
}
