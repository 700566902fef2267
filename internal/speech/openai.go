package speech

import (
	"context"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAISpeech implements both Transcriber and Synthesizer on the OpenAI
// audio endpoints (Whisper for speech-to-text, tts-1 for text-to-speech).
type OpenAISpeech struct {
	client openai.Client
}

func NewOpenAISpeech(apiKey string) *OpenAISpeech {
	return &OpenAISpeech{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (s *OpenAISpeech) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  audio,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

func (s *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModelTTS1,
		Input: text,
		Voice: openai.AudioSpeechNewParamsVoiceAlloy,
	})
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, "audio/mpeg", nil
}
