package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubBackend struct {
	name  string
	out   string
	err   error
	calls int
}

func (s *stubBackend) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func (s *stubBackend) Name() string { return s.name }

func newTestRouter(backends ...Backend) *Router {
	return NewRouter(backends, time.Second, zap.NewNop())
}

func TestRouterFirstSuccessWins(t *testing.T) {
	primary := &stubBackend{name: "primary", out: "hello"}
	fallback := &stubBackend{name: "fallback", out: "unused"}
	router := newTestRouter(primary, fallback)

	got, err := router.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected primary output, got %q", got)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback should not have been called")
	}
}

func TestRouterFallsThroughOnFailure(t *testing.T) {
	primary := &stubBackend{name: "primary", err: &ProviderError{Provider: "primary", Code: ErrCodeRateLimit, Message: "429"}}
	fallback := &stubBackend{name: "fallback", out: "rescued"}
	router := newTestRouter(primary, fallback)

	got, err := router.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "rescued" {
		t.Fatalf("expected fallback output, got %q", got)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("expected one call each, got %d/%d", primary.calls, fallback.calls)
	}
}

func TestRouterAllBackendsFailed(t *testing.T) {
	a := &stubBackend{name: "a", err: errors.New("down")}
	b := &stubBackend{name: "b", err: errors.New("down too")}
	router := newTestRouter(a, b)

	_, err := router.Complete(context.Background(), "prompt")
	if !errors.Is(err, ErrAllBackendsFailed) {
		t.Fatalf("expected ErrAllBackendsFailed, got %v", err)
	}
}

func TestRouterEmptyOutputCountsAsFailure(t *testing.T) {
	empty := &stubBackend{name: "empty", out: ""}
	good := &stubBackend{name: "good", out: "text"}
	router := newTestRouter(empty, good)

	got, err := router.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "text" {
		t.Fatalf("expected fallback output, got %q", got)
	}
}

func TestCompleteDecisionParsesFencedJSON(t *testing.T) {
	fenced := &stubBackend{name: "fenced", out: "```json\n{\"action\":\"follow_up\",\"question_text\":\"Why?\",\"suggested_time_seconds\":90}\n```"}
	router := newTestRouter(fenced)

	payload, err := router.CompleteDecision(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Action != "follow_up" || payload.QuestionText != "Why?" || payload.SuggestedTimeSeconds != 90 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCompleteDecisionSkipsUnparseableBackend(t *testing.T) {
	garbage := &stubBackend{name: "garbage", out: "I think the next question should be..."}
	good := &stubBackend{name: "good", out: `{"action":"preset"}`}
	router := newTestRouter(garbage, good)

	payload, err := router.CompleteDecision(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Action != "preset" {
		t.Fatalf("expected fallback backend payload, got %+v", payload)
	}
	if garbage.calls != 1 || good.calls != 1 {
		t.Fatalf("expected both backends tried once")
	}
}

func TestErrorCodeUnwrapsProviderError(t *testing.T) {
	pe := &ProviderError{Provider: "gemini", Code: ErrCodeRateLimit, Message: "429"}
	wrapped := fmt.Errorf("turn failed: %w", pe)

	if got := ErrorCode(wrapped); got != ErrCodeRateLimit {
		t.Fatalf("expected %q, got %q", ErrCodeRateLimit, got)
	}
	if got := ErrorCode(errors.New("plain")); got != ErrCodeServiceDown {
		t.Fatalf("expected default %q, got %q", ErrCodeServiceDown, got)
	}
}

func TestRouterNoBackends(t *testing.T) {
	router := newTestRouter()
	if _, err := router.Complete(context.Background(), "prompt"); !errors.Is(err, ErrAllBackendsFailed) {
		t.Fatalf("expected ErrAllBackendsFailed, got %v", err)
	}
}
