package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/aibuddy434-arch/SmartInterview/internal/llm"
)

const systemMessage = "You are an expert AI interviewer. Output ONLY valid JSON."

// Client is the OpenAI reasoning backend.
type Client struct {
	client openai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	client := openai.NewClient(option.WithAPIKey(config.APIKey))
	return &Client{client: client, config: config}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemMessage),
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(2048),
		Temperature:         openai.Float(0.3),
	})
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "openai",
			Code:     llm.ErrCodeServiceDown,
			Message:  "chat completion failed",
			Err:      err,
		}
	}
	if len(resp.Choices) == 0 {
		return "", &llm.ProviderError{
			Provider: "openai",
			Code:     llm.ErrCodeEmptyOutput,
			Message:  "no choices returned",
		}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Name() string {
	return "openai"
}
