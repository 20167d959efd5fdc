package ai

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

var (
	// ErrAuthentication means the provider rejected the credential.
	ErrAuthentication = errors.New("authentication failed")
	// ErrProvider covers transport failures and every other provider-side error.
	ErrProvider = errors.New("provider request failed")
)

// ClassifyError wraps an SDK error with ErrAuthentication or ErrProvider.
// The original error stays in the chain.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrProvider) {
		return err
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) && isAuthStatus(openaiErr.StatusCode) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) && isAuthStatus(anthropicErr.StatusCode) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return fmt.Errorf("%w: %w", ErrProvider, err)
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
