package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"articleprompts/internal/logger"
	"articleprompts/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in errorResponse.Code.
const (
	codeEmptyContent      = "empty_content"
	codeInvalidRequest    = "invalid_request"
	codeMissingCredential = "missing_credential"
	codeMisconfigured     = "provider_misconfigured"
	codeAuthentication    = "authentication_failed"
	codeProvider          = "provider_error"
	codeFetchFailed       = "fetch_failed"
	codeNotFound          = "not_found"
	codeInternal          = "internal_error"
)

// secretPattern matches API keys and bearer tokens that SDK errors may echo back.
var secretPattern = regexp.MustCompile(`(?i)(bearer\s+\S+|\bsk-[a-z0-9_\-]{4,}|api[_-]?key["'=:\s]+[^\s"',&]+)`)

func writeServiceError(c echo.Context, err error) error {
	var cerr *service.CompletionError
	failedStep := ""
	if errors.As(err, &cerr) {
		failedStep = fmt.Sprintf(" (%s)", cerr.Kind)
	}

	switch {
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		return c.NoContent(499)
	case errors.Is(err, service.ErrEmptyContent):
		return Error(c, http.StatusBadRequest, codeEmptyContent, "article content is empty")
	case errors.Is(err, service.ErrMissingCredential):
		return Error(c, http.StatusBadRequest, codeMissingCredential, "an API key is required")
	case errors.Is(err, service.ErrMisconfigured):
		return Error(c, http.StatusBadRequest, codeMisconfigured, withCause("the AI provider is misconfigured", err, service.ErrMisconfigured))
	case errors.Is(err, service.ErrInvalid):
		return Error(c, http.StatusBadRequest, codeInvalidRequest, "invalid request")
	case errors.Is(err, service.ErrNotFound):
		return Error(c, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.Is(err, service.ErrAuthentication):
		return Error(c, http.StatusUnauthorized, codeAuthentication, "the AI provider rejected the API key"+failedStep)
	case errors.Is(err, service.ErrProviderUnavailable):
		return Error(c, http.StatusBadGateway, codeProvider, withCause("the AI provider request failed"+failedStep, err, service.ErrProviderUnavailable))
	case errors.Is(err, service.ErrFetchFailed):
		return Error(c, http.StatusBadGateway, codeFetchFailed, "article fetch failed")
	default:
		logger.Error("request failed", "module", "handler", "action", "respond", "resource", c.Path(), "result", "failed", "error", err)
		return Error(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// withCause appends whatever err says after sentinel, with credentials masked.
func withCause(message string, err, sentinel error) string {
	_, cause, found := strings.Cut(err.Error(), sentinel.Error()+": ")
	cause = strings.TrimSpace(cause)
	if !found || cause == "" {
		return message
	}
	return message + ": " + secretPattern.ReplaceAllString(cause, "[redacted]")
}

// Error returns a JSON error response with the given status, code and message
func Error(c echo.Context, status int, code, message string) error {
	return c.JSON(status, errorResponse{Error: message, Code: code})
}
