package speech

import (
	"context"
	"io"
)

// Transcriber turns recorded candidate audio into text. Implementations
// return empty text (not an error) when the audio contains no usable speech.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Synthesizer renders question text to spoken audio for playback to the
// candidate.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, string, error)
}
