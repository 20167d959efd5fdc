package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"articleprompts/internal/logger"
	"articleprompts/internal/repository"
	"articleprompts/internal/service/ai"
)

// AISettings holds the AI configuration.
type AISettings struct {
	Provider    string `json:"provider"`
	APIKey      string `json:"apiKey"`
	BaseURL     string `json:"baseUrl"`
	Model       string `json:"model"`
	FAQCount    int    `json:"faqCount"`
	Concurrency int    `json:"concurrency"`
}

// AIDefaults are used for settings that were never stored.
type AIDefaults struct {
	Provider string
	Model    string
	BaseURL  string
}

// NetworkSettings holds the outbound proxy configuration.
type NetworkSettings struct {
	Enabled  bool   `json:"enabled"`
	Type     string `json:"type"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProxyURL builds the proxy URL, or "" when the proxy is disabled or incomplete.
func (n NetworkSettings) ProxyURL() string {
	if !n.Enabled || n.Host == "" || n.Port <= 0 {
		return ""
	}
	proxyType := n.Type
	if proxyType == "" {
		proxyType = "http"
	}
	u := url.URL{
		Scheme: proxyType,
		Host:   n.Host + ":" + strconv.Itoa(n.Port),
	}
	if n.Username != "" && n.Password != "" {
		u.User = url.UserPassword(n.Username, n.Password)
	}
	return u.String()
}

// Setting keys
const (
	KeyAIProvider    = "ai.provider"
	KeyAIAPIKey      = "ai.api_key"
	KeyAIBaseURL     = "ai.base_url"
	KeyAIModel       = "ai.model"
	KeyAIFAQCount    = "ai.faq_count"
	KeyAIConcurrency = "ai.concurrency"

	KeyNetworkEnabled  = "network.enabled"
	KeyNetworkType     = "network.type"
	KeyNetworkHost     = "network.host"
	KeyNetworkPort     = "network.port"
	KeyNetworkUsername = "network.username"
	KeyNetworkPassword = "network.password"

	keyAnubisPrefix = "anubis."
)

const (
	DefaultConcurrency = 1
	MaxConcurrency     = 4
)

// SettingsService provides settings management.
type SettingsService interface {
	// GetAISettings returns the AI configuration with a masked API key.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// GetAIConfig returns the AI configuration including the stored API key.
	GetAIConfig(ctx context.Context) (*AISettings, error)
	// SetAISettings updates the AI configuration.
	// An empty or masked apiKey keeps the existing key.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// TestAI verifies the credential for the given configuration.
	TestAI(ctx context.Context, provider, apiKey, baseURL, model string) error

	GetNetworkSettings(ctx context.Context) (*NetworkSettings, error)
	SetNetworkSettings(ctx context.Context, settings *NetworkSettings) error
	// GetProxyURL returns the configured proxy URL, or "" for a direct connection.
	GetProxyURL(ctx context.Context) string
	// ClearAnubisCookies deletes every cached Anubis pass cookie and returns how many settings were removed.
	ClearAnubisCookies(ctx context.Context) (int64, error)
}

type settingsService struct {
	repo        repository.SettingsRepository
	defaults    AIDefaults
	newProvider ai.Factory
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository, defaults AIDefaults, newProvider ai.Factory) SettingsService {
	if newProvider == nil {
		newProvider = ai.NewProvider
	}
	return &settingsService{repo: repo, defaults: defaults, newProvider: newProvider}
}

func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	settings, err := s.GetAIConfig(ctx)
	if err != nil {
		return nil, err
	}
	settings.APIKey = maskAPIKey(settings.APIKey)
	return settings, nil
}

func (s *settingsService) GetAIConfig(ctx context.Context) (*AISettings, error) {
	stored, err := s.loadPrefix(ctx, "ai.")
	if err != nil {
		return nil, fmt.Errorf("get AI settings: %w", err)
	}

	settings := &AISettings{
		Provider:    s.defaults.Provider,
		BaseURL:     s.defaults.BaseURL,
		Model:       s.defaults.Model,
		FAQCount:    ai.DefaultFAQCount,
		Concurrency: DefaultConcurrency,
	}
	if settings.Provider == "" {
		settings.Provider = ai.ProviderOpenAI
	}

	if val := stored[KeyAIProvider]; val != "" {
		settings.Provider = val
	}
	settings.APIKey = stored[KeyAIAPIKey]
	if val := stored[KeyAIBaseURL]; val != "" {
		settings.BaseURL = val
	}
	if val := stored[KeyAIModel]; val != "" {
		settings.Model = val
	}
	if n, err := strconv.Atoi(stored[KeyAIFAQCount]); err == nil && ai.ValidateFAQCount(n) == nil {
		settings.FAQCount = n
	}
	if n, err := strconv.Atoi(stored[KeyAIConcurrency]); err == nil && n >= 1 && n <= MaxConcurrency {
		settings.Concurrency = n
	}

	return settings, nil
}

func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	if settings.Provider != "" && !ai.IsValidProvider(settings.Provider) {
		return fmt.Errorf("%w: unknown provider %q", ErrInvalid, settings.Provider)
	}
	if settings.Provider == ai.ProviderCompatible && settings.BaseURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalid, ai.ErrMissingBaseURL)
	}
	if settings.FAQCount == 0 {
		settings.FAQCount = ai.DefaultFAQCount
	}
	if err := ai.ValidateFAQCount(settings.FAQCount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if settings.Concurrency == 0 {
		settings.Concurrency = DefaultConcurrency
	}
	if settings.Concurrency < 1 || settings.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: concurrency must be between 1 and %d", ErrInvalid, MaxConcurrency)
	}

	values := map[string]string{
		KeyAIBaseURL:     strings.TrimSpace(settings.BaseURL),
		KeyAIModel:       strings.TrimSpace(settings.Model),
		KeyAIFAQCount:    strconv.Itoa(settings.FAQCount),
		KeyAIConcurrency: strconv.Itoa(settings.Concurrency),
	}
	if settings.Provider != "" {
		values[KeyAIProvider] = settings.Provider
	}
	if key := strings.TrimSpace(settings.APIKey); key != "" && !isMaskedKey(key) {
		values[KeyAIAPIKey] = key
	}

	if err := s.repo.SetMany(ctx, values); err != nil {
		logger.Warn("ai settings save failed", "module", "service", "action", "save", "resource", "settings", "result", "failed", "error", err)
		return fmt.Errorf("save AI settings: %w", err)
	}
	logger.Info("ai settings saved", "module", "service", "action", "save", "resource", "settings", "result", "ok", "provider", settings.Provider, "model", settings.Model)
	return nil
}

// maskAPIKey returns a masked version of the API key for display.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	// Find prefix (e.g., "sk-" for OpenAI)
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	prefix := apiKey[:prefixEnd]
	suffix := apiKey[len(apiKey)-3:]
	return prefix + "***" + suffix
}

// isMaskedKey checks if a string looks like a masked API key.
func isMaskedKey(key string) bool {
	if len(key) == 0 || len(key) >= 20 {
		return false
	}
	return strings.Contains(key, "***")
}

func (s *settingsService) TestAI(ctx context.Context, provider, apiKey, baseURL, model string) error {
	// If apiKey looks like a masked key, try to get the stored key
	if apiKey == "" || isMaskedKey(apiKey) {
		stored, err := s.repo.Get(ctx, KeyAIAPIKey)
		if err != nil {
			return fmt.Errorf("get stored api key: %w", err)
		}
		apiKey = ""
		if stored != nil {
			apiKey = stored.Value
		}
	}

	p, err := s.newProvider(ai.Config{
		Provider:    provider,
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       model,
		Temperature: ai.DefaultTemperature,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := p.Verify(ctx); err != nil {
		logger.Warn("ai test failed", "module", "service", "action", "verify", "resource", "ai", "result", "failed", "provider", provider, "model", model, "error", err)
		return err
	}
	logger.Info("ai test ok", "module", "service", "action", "verify", "resource", "ai", "result", "ok", "provider", provider, "model", model)
	return nil
}

func (s *settingsService) GetNetworkSettings(ctx context.Context) (*NetworkSettings, error) {
	settings, err := s.loadNetwork(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Password != "" {
		settings.Password = maskAPIKey(settings.Password)
	}
	return settings, nil
}

func (s *settingsService) SetNetworkSettings(ctx context.Context, settings *NetworkSettings) error {
	switch settings.Type {
	case "", "http", "https", "socks5":
	default:
		return fmt.Errorf("%w: unsupported proxy type %q", ErrInvalid, settings.Type)
	}
	if settings.Enabled && (settings.Host == "" || settings.Port <= 0 || settings.Port > 65535) {
		return fmt.Errorf("%w: proxy host and port are required", ErrInvalid)
	}

	values := map[string]string{
		KeyNetworkEnabled:  strconv.FormatBool(settings.Enabled),
		KeyNetworkType:     settings.Type,
		KeyNetworkHost:     strings.TrimSpace(settings.Host),
		KeyNetworkPort:     strconv.Itoa(settings.Port),
		KeyNetworkUsername: settings.Username,
	}
	if settings.Password != "" && !isMaskedKey(settings.Password) {
		values[KeyNetworkPassword] = settings.Password
	}
	if err := s.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save network settings: %w", err)
	}
	return nil
}

func (s *settingsService) GetProxyURL(ctx context.Context) string {
	settings, err := s.loadNetwork(ctx)
	if err != nil {
		logger.Warn("proxy settings load failed", "module", "service", "action", "fetch", "resource", "settings", "result", "failed", "error", err)
		return ""
	}
	return settings.ProxyURL()
}

func (s *settingsService) ClearAnubisCookies(ctx context.Context) (int64, error) {
	rows, err := s.repo.GetByPrefix(ctx, keyAnubisPrefix)
	if err != nil {
		return 0, fmt.Errorf("list anubis cookies: %w", err)
	}
	var deleted int64
	for _, row := range rows {
		if err := s.repo.Delete(ctx, row.Key); err != nil {
			return deleted, fmt.Errorf("delete anubis cookie: %w", err)
		}
		deleted++
	}
	logger.Info("anubis cookies cleared", "module", "service", "action", "delete", "resource", "settings", "result", "ok", "count", deleted)
	return deleted, nil
}

func (s *settingsService) loadNetwork(ctx context.Context) (*NetworkSettings, error) {
	stored, err := s.loadPrefix(ctx, "network.")
	if err != nil {
		return nil, fmt.Errorf("get network settings: %w", err)
	}
	settings := &NetworkSettings{
		Enabled:  stored[KeyNetworkEnabled] == "true",
		Type:     stored[KeyNetworkType],
		Host:     stored[KeyNetworkHost],
		Username: stored[KeyNetworkUsername],
		Password: stored[KeyNetworkPassword],
	}
	settings.Port, _ = strconv.Atoi(stored[KeyNetworkPort])
	return settings, nil
}

// loadPrefix fetches every setting under prefix in a single query.
func (s *settingsService) loadPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	rows, err := s.repo.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
