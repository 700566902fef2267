package openai

import "github.com/aibuddy434-arch/SmartInterview/internal/llm"

// Register OpenAI backend on package import
func init() {
	llm.RegisterBackend("openai", func() (llm.Backend, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config)
	})
}
