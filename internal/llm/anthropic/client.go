package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/aibuddy434-arch/SmartInterview/internal/llm"
)

// Client is the Anthropic reasoning backend.
type Client struct {
	client anthropic.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	client := anthropic.NewClient(option.WithAPIKey(config.APIKey))
	return &Client{client: client, config: config}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "anthropic",
			Code:     llm.ErrCodeServiceDown,
			Message:  "message request failed",
			Err:      err,
		}
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	if content == "" {
		return "", &llm.ProviderError{
			Provider: "anthropic",
			Code:     llm.ErrCodeEmptyOutput,
			Message:  "no text content returned",
		}
	}
	return content, nil
}

func (c *Client) Name() string {
	return "anthropic"
}
