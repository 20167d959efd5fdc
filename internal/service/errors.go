package service

import (
	"errors"
	"fmt"

	"articleprompts/internal/model"
	"articleprompts/internal/service/ai"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalid     = errors.New("invalid")
	ErrFetchFailed = errors.New("fetch failed")

	ErrEmptyContent      = errors.New("article content is required")
	ErrMissingCredential = errors.New("API key is required")
	ErrMisconfigured     = errors.New("AI provider is not configured")

	// Provider failures share identity with the ai package so either can be matched.
	ErrAuthentication      = ai.ErrAuthentication
	ErrProviderUnavailable = ai.ErrProvider
)

// CompletionError reports which prompt failed. Remaining prompts of the run were not sent.
type CompletionError struct {
	Kind model.PromptKind
	Err  error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion: %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
