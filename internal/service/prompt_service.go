package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"articleprompts/internal/logger"
	"articleprompts/internal/model"
	"articleprompts/internal/service/ai"
	"articleprompts/internal/snowflake"
)

const verifyTimeout = 15 * time.Second

// GenerateInput is one form submission.
type GenerateInput struct {
	Content  string
	APIKey   string // overrides the stored key when set
	FAQCount int    // 0 selects the stored default
}

// PreviewResult is the extraction and filled templates without any remote call.
type PreviewResult struct {
	Article model.ParsedArticle `json:"article"`
	Prompts model.PromptSet     `json:"prompts"`
}

type PromptService interface {
	// Preview extracts the article and fills the templates.
	Preview(ctx context.Context, content string, faqCount int) (*PreviewResult, error)
	// Generate runs the full pipeline. Any failure discards the whole run.
	Generate(ctx context.Context, in GenerateInput) (*model.GenerationResult, error)
}

type promptService struct {
	settings    SettingsService
	newProvider ai.Factory
}

func NewPromptService(settings SettingsService, newProvider ai.Factory) PromptService {
	if newProvider == nil {
		newProvider = ai.NewProvider
	}
	return &promptService{settings: settings, newProvider: newProvider}
}

func (s *promptService) Preview(ctx context.Context, content string, faqCount int) (*PreviewResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	cfg, err := s.settings.GetAIConfig(ctx)
	if err != nil {
		return nil, err
	}
	faqCount, err = resolveFAQCount(faqCount, cfg.FAQCount)
	if err != nil {
		return nil, err
	}

	article := ai.Extract(content)
	return &PreviewResult{
		Article: article,
		Prompts: ai.BuildPrompts(article, faqCount),
	}, nil
}

func (s *promptService) Generate(ctx context.Context, in GenerateInput) (*model.GenerationResult, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyContent
	}
	cfg, err := s.settings.GetAIConfig(ctx)
	if err != nil {
		return nil, err
	}
	faqCount, err := resolveFAQCount(in.FAQCount, cfg.FAQCount)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(in.APIKey)
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	provider, err := s.newProvider(ai.Config{
		Provider:    cfg.Provider,
		APIKey:      apiKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: ai.DefaultTemperature,
	})
	if err != nil {
		if errors.Is(err, ai.ErrMissingAPIKey) {
			return nil, ErrMissingCredential
		}
		return nil, fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}

	runID := snowflake.NextID()
	start := time.Now()

	if err := s.verify(ctx, provider); err != nil {
		logger.Warn("prompt run rejected", "module", "service", "action", "verify", "resource", "ai", "result", "failed", "run_id", runID, "provider", provider.Name(), "error", err)
		return nil, err
	}

	article := ai.Extract(in.Content)
	prompts := ai.BuildPrompts(article, faqCount)
	logger.Debug("prompts assembled", "module", "service", "action", "build", "resource", "prompt", "result", "ok", "run_id", runID, "title", article.Title, "headings", len(article.Headings), "faq_count", faqCount)

	results, err := runCompletions(ctx, provider, prompts, cfg.Concurrency)
	if err != nil {
		var cerr *CompletionError
		if errors.As(err, &cerr) {
			logger.Warn("prompt run aborted", "module", "service", "action", "complete", "resource", "ai", "result", "failed", "run_id", runID, "kind", cerr.Kind, "error", cerr.Err)
		}
		return nil, err
	}

	logger.Info("prompt run completed", "module", "service", "action", "generate", "resource", "prompt", "result", "ok", "run_id", runID, "provider", provider.Name(), "duration_ms", time.Since(start).Milliseconds())
	return &model.GenerationResult{
		RunID:   runID,
		Article: article,
		Prompts: prompts,
		Results: results,
	}, nil
}

// verify checks the credential before any completion is sent.
func (s *promptService) verify(ctx context.Context, provider ai.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := provider.Verify(ctx); err != nil {
		return ai.ClassifyError(err)
	}
	return nil
}

// runCompletions sends the prompts in model.PromptKinds order, at most limit at a time.
// The first failure cancels in-flight calls and skips the ones not yet started.
func runCompletions(ctx context.Context, provider ai.Provider, prompts model.PromptSet, limit int) (model.PromptSet, error) {
	if limit < 1 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	outputs := make([]string, len(model.PromptKinds))
	for i, kind := range model.PromptKinds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := provider.Complete(gctx, ai.SystemPrompt, prompts.Get(kind))
			if err != nil {
				return &CompletionError{Kind: kind, Err: ai.ClassifyError(err)}
			}
			outputs[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.PromptSet{}, err
	}

	var results model.PromptSet
	for i, kind := range model.PromptKinds {
		results.Set(kind, outputs[i])
	}
	return results, nil
}

func resolveFAQCount(requested, stored int) (int, error) {
	if requested == 0 {
		if stored == 0 {
			return ai.DefaultFAQCount, nil
		}
		return stored, nil
	}
	if err := ai.ValidateFAQCount(requested); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return requested, nil
}
