package llm

import (
	"context"
	"errors"
)

// Backend is the capability abstraction over one external text-generation
// provider. Complete returns the raw model text for a prompt; callers parse
// and validate it themselves.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ProviderError wraps a failure from one backend with a classification code.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes across providers
const (
	ErrCodeAPIKey        = "invalid_api_key"
	ErrCodeRateLimit     = "rate_limit_exceeded"
	ErrCodeServiceDown   = "service_unavailable"
	ErrCodeEmptyOutput   = "empty_output"
	ErrCodeInvalidOutput = "invalid_output"
	ErrCodeTimeout       = "timeout"
)

// ErrorCode extracts the classification code from err, defaulting to
// service_unavailable for untyped failures.
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeServiceDown
}
