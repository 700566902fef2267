package speech

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable means no speech backend is configured.
var ErrUnavailable = errors.New("speech service not configured")

// Noop is used when no speech API key is configured. Transcription yields no
// text, so the flow falls back to the client-side live transcript; synthesis
// reports unavailability so handlers can return 503.
type Noop struct{}

func (Noop) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return "", nil
}

func (Noop) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	return nil, "", ErrUnavailable
}
