package service_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"articleprompts/internal/model"
	"articleprompts/internal/service"
	"articleprompts/internal/service/ai"
	aimock "articleprompts/internal/service/ai/mock"
)

const sampleArticle = `<h1>Cats</h1><h2>Diet</h2><h3>Sleep</h3><p>Cats eat meat.</p><p>They sleep a lot.</p>`

// aiConfigStub satisfies service.SettingsService for pipeline tests.
type aiConfigStub struct {
	service.SettingsService
	cfg service.AISettings
	err error
}

func (s *aiConfigStub) GetAIConfig(context.Context) (*service.AISettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := s.cfg
	return &cfg, nil
}

func storedConfig() *aiConfigStub {
	return &aiConfigStub{cfg: service.AISettings{
		Provider:    ai.ProviderOpenAI,
		APIKey:      "sk-stored",
		Model:       "gpt-4o-mini",
		FAQCount:    ai.DefaultFAQCount,
		Concurrency: 1,
	}}
}

// providerFactory returns p and records the config it was built with.
func providerFactory(p ai.Provider, got *ai.Config) ai.Factory {
	return func(cfg ai.Config) (ai.Provider, error) {
		if got != nil {
			*got = cfg
		}
		return p, nil
	}
}

func forbiddenFactory(t *testing.T) ai.Factory {
	return func(ai.Config) (ai.Provider, error) {
		t.Fatal("provider must not be constructed")
		return nil, nil
	}
}

func TestPromptService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()

	expected := ai.BuildPrompts(ai.Extract(sampleArticle), 4)
	gomock.InOrder(
		provider.EXPECT().Verify(gomock.Any()).Return(nil),
		provider.EXPECT().Complete(gomock.Any(), ai.SystemPrompt, expected.FAQ).Return("faq out", nil),
		provider.EXPECT().Complete(gomock.Any(), ai.SystemPrompt, expected.AIOverview).Return("overview out", nil),
		provider.EXPECT().Complete(gomock.Any(), ai.SystemPrompt, expected.PeopleAlsoAsk).Return("paa out", nil),
		provider.EXPECT().Complete(gomock.Any(), ai.SystemPrompt, expected.Entities).Return("entities out", nil),
	)

	var built ai.Config
	svc := service.NewPromptService(storedConfig(), providerFactory(provider, &built))

	result, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.NoError(t, err)
	require.NotZero(t, result.RunID)
	require.Equal(t, "Cats", result.Article.Title)
	require.Equal(t, []string{"Diet", "Sleep"}, result.Article.Headings)
	require.Equal(t, expected, result.Prompts)
	require.Equal(t, model.PromptSet{
		FAQ:           "faq out",
		AIOverview:    "overview out",
		PeopleAlsoAsk: "paa out",
		Entities:      "entities out",
	}, result.Results)

	require.Equal(t, "sk-stored", built.APIKey)
	require.Equal(t, "gpt-4o-mini", built.Model)
	require.Equal(t, ai.DefaultTemperature, built.Temperature)
}

func TestPromptService_Generate_RequestKeyOverridesStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(nil)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("ok", nil).Times(4)

	var built ai.Config
	svc := service.NewPromptService(storedConfig(), providerFactory(provider, &built))

	_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle, APIKey: "  sk-request  "})
	require.NoError(t, err)
	require.Equal(t, "sk-request", built.APIKey)
}

func TestPromptService_Generate_EmptyContent(t *testing.T) {
	svc := service.NewPromptService(storedConfig(), forbiddenFactory(t))

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Generate(context.Background(), service.GenerateInput{Content: content})
		require.ErrorIs(t, err, service.ErrEmptyContent)
	}
}

func TestPromptService_Generate_MissingCredential(t *testing.T) {
	settings := storedConfig()
	settings.cfg.APIKey = ""
	svc := service.NewPromptService(settings, forbiddenFactory(t))

	_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle, APIKey: " "})
	require.ErrorIs(t, err, service.ErrMissingCredential)
}

func TestPromptService_Generate_RejectedCredentialSkipsCompletions(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(ai.ErrAuthentication)

	svc := service.NewPromptService(storedConfig(), providerFactory(provider, nil))

	result, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.Nil(t, result)
	require.ErrorIs(t, err, service.ErrAuthentication)
}

func TestPromptService_Generate_VerifyTransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(errors.New("connection refused"))

	svc := service.NewPromptService(storedConfig(), providerFactory(provider, nil))

	_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.ErrorIs(t, err, service.ErrProviderUnavailable)
	require.NotErrorIs(t, err, service.ErrAuthentication)
}

func TestPromptService_Generate_CompletionFailureAbortsRemaining(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(nil)

	var calls atomic.Int32
	provider.EXPECT().Complete(gomock.Any(), ai.SystemPrompt, gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (string, error) {
			if calls.Add(1) == 2 {
				return "", errors.New("upstream 500")
			}
			return "ok", nil
		}).Times(2)

	svc := service.NewPromptService(storedConfig(), providerFactory(provider, nil))

	result, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.Nil(t, result)
	require.ErrorIs(t, err, service.ErrProviderUnavailable)

	var cerr *service.CompletionError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, model.PromptAIOverview, cerr.Kind)
	require.Equal(t, int32(2), calls.Load())
}

func TestPromptService_Generate_CompletionAuthFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(nil)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("", ai.ErrAuthentication)

	svc := service.NewPromptService(storedConfig(), providerFactory(provider, nil))

	_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.ErrorIs(t, err, service.ErrAuthentication)

	var cerr *service.CompletionError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, model.PromptFAQ, cerr.Kind)
}

func TestPromptService_Generate_Concurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(nil)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "FAQs"):
				return "faq", nil
			case strings.Contains(prompt, "AI-generated answers"):
				return "overview", nil
			case strings.Contains(prompt, "informational questions"):
				return "paa", nil
			default:
				return "entities", nil
			}
		}).Times(4)

	settings := storedConfig()
	settings.cfg.Concurrency = 4
	svc := service.NewPromptService(settings, providerFactory(provider, nil))

	result, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.NoError(t, err)
	require.Equal(t, "faq", result.Results.FAQ)
	require.Equal(t, "overview", result.Results.AIOverview)
	require.Equal(t, "paa", result.Results.PeopleAlsoAsk)
	require.Equal(t, "entities", result.Results.Entities)
}

func TestPromptService_Generate_FAQCount(t *testing.T) {
	svc := service.NewPromptService(storedConfig(), forbiddenFactory(t))
	for _, n := range []int{-1, 11} {
		_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle, FAQCount: n})
		require.ErrorIs(t, err, service.ErrInvalid)
	}

	ctrl := gomock.NewController(t)
	provider := aimock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("openai").AnyTimes()
	provider.EXPECT().Verify(gomock.Any()).Return(nil)
	provider.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return("ok", nil).Times(4)

	svc = service.NewPromptService(storedConfig(), providerFactory(provider, nil))
	result, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle, FAQCount: 7})
	require.NoError(t, err)
	require.Contains(t, result.Prompts.FAQ, "Generate 7 SEO-compliant FAQs")
}

func TestPromptService_Generate_Misconfigured(t *testing.T) {
	svc := service.NewPromptService(storedConfig(), func(ai.Config) (ai.Provider, error) {
		return nil, ai.ErrMissingModel
	})

	_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.ErrorIs(t, err, service.ErrMisconfigured)
	require.ErrorIs(t, err, ai.ErrMissingModel)
}

func TestPromptService_Generate_SettingsError(t *testing.T) {
	boom := errors.New("db locked")
	svc := service.NewPromptService(&aiConfigStub{err: boom}, forbiddenFactory(t))

	_, err := svc.Generate(context.Background(), service.GenerateInput{Content: sampleArticle})
	require.ErrorIs(t, err, boom)
}

func TestPromptService_Preview(t *testing.T) {
	settings := storedConfig()
	settings.cfg.FAQCount = 6
	svc := service.NewPromptService(settings, forbiddenFactory(t))

	preview, err := svc.Preview(context.Background(), sampleArticle, 0)
	require.NoError(t, err)
	require.Equal(t, "Cats", preview.Article.Title)
	require.Equal(t, ai.BuildPrompts(preview.Article, 6), preview.Prompts)

	_, err = svc.Preview(context.Background(), " ", 3)
	require.ErrorIs(t, err, service.ErrEmptyContent)

	_, err = svc.Preview(context.Background(), sampleArticle, 42)
	require.ErrorIs(t, err, service.ErrInvalid)
}
