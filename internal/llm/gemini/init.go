package gemini

import "github.com/aibuddy434-arch/SmartInterview/internal/llm"

// Register Gemini backend on package import
func init() {
	llm.RegisterBackend("gemini", func() (llm.Backend, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config)
	})
}
