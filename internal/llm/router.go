package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/metrics"
	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

// ErrAllBackendsFailed is returned when every configured backend failed for a
// request. Callers are expected to degrade gracefully rather than surface it
// to candidates.
var ErrAllBackendsFailed = errors.New("all reasoning backends failed")

// DefaultCallTimeout bounds one backend call.
const DefaultCallTimeout = 60 * time.Second

// Router holds an ordered list of backends (primary first) and tries each in
// sequence until one produces usable output. Backends are never called in
// parallel: a fallback call only spends quota when the one before it failed.
type Router struct {
	backends []Backend
	timeout  time.Duration
	logger   *zap.Logger
}

func NewRouter(backends []Backend, timeout time.Duration, logger *zap.Logger) *Router {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{backends: backends, timeout: timeout, logger: logger}
}

// Backends returns the configured provider names in fallback order.
func (r *Router) Backends() []string {
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name()
	}
	return names
}

// Complete returns the first backend's raw text output, falling through to
// the next backend on any failure or empty response.
func (r *Router) Complete(ctx context.Context, prompt string) (string, error) {
	return r.complete(ctx, prompt, nil)
}

// CompleteJSON asks each backend in order for JSON output and unmarshals it
// into out. Malformed or non-parseable output counts as a backend failure and
// moves on to the next backend, the same as a network error.
func (r *Router) CompleteJSON(ctx context.Context, prompt string, out interface{}) error {
	_, err := r.complete(ctx, prompt, func(raw string) error {
		return json.Unmarshal([]byte(utils.StripFences(raw)), out)
	})
	return err
}

// CompleteDecision is CompleteJSON specialised to a turn decision payload.
// On total failure the payload is nil and the caller's fallback rules apply.
func (r *Router) CompleteDecision(ctx context.Context, prompt string) (*models.DecisionPayload, error) {
	var payload models.DecisionPayload
	if err := r.CompleteJSON(ctx, prompt, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (r *Router) complete(ctx context.Context, prompt string, accept func(string) error) (string, error) {
	if len(r.backends) == 0 {
		metrics.RecordBackendsExhausted()
		return "", ErrAllBackendsFailed
	}

	for _, b := range r.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		metrics.RecordBackendAttempt(b.Name())

		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		raw, err := b.Complete(callCtx, prompt)
		cancel()

		if err == nil && raw == "" {
			err = &ProviderError{Provider: b.Name(), Code: ErrCodeEmptyOutput, Message: "empty response"}
		}
		if err == nil && accept != nil {
			if parseErr := accept(raw); parseErr != nil {
				err = &ProviderError{Provider: b.Name(), Code: ErrCodeInvalidOutput, Message: "unparseable response", Err: parseErr}
			}
		}
		if err != nil {
			metrics.RecordBackendFailure(b.Name(), ErrorCode(err))
			r.logger.Warn("reasoning backend failed, trying next",
				zap.String("provider", b.Name()),
				zap.String("code", ErrorCode(err)),
				zap.Error(err))
			continue
		}

		return raw, nil
	}

	metrics.RecordBackendsExhausted()
	r.logger.Warn("all reasoning backends exhausted",
		zap.Strings("providers", r.Backends()))
	return "", ErrAllBackendsFailed
}
