package anthropic

import "github.com/aibuddy434-arch/SmartInterview/internal/llm"

// Register Anthropic backend on package import
func init() {
	llm.RegisterBackend("anthropic", func() (llm.Backend, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config)
	})
}
