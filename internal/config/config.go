package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/aibuddy434-arch/SmartInterview/internal/flow"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	UploadDir   string

	// Reasoning backends in fallback order.
	Providers          []string
	CallTimeoutSeconds int

	// OpenAI key doubles as the speech (Whisper/TTS) credential.
	SpeechAPIKey string

	// Sessions still in_progress this long after their start are reaped.
	SessionMaxAgeHours int

	Tuning flow.Tuning
}

var supportedProviders = map[string]bool{
	"gemini":    true,
	"openai":    true,
	"anthropic": true,
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", "dev"),
		UploadDir:          getEnvOrDefault("UPLOAD_DIR", "uploads"),
		Providers:          splitList(getEnvOrDefault("REASONING_PROVIDERS", "gemini,openai,anthropic")),
		CallTimeoutSeconds: getEnvInt("REASONING_CALL_TIMEOUT_SECONDS", 60),
		SpeechAPIKey:       os.Getenv("OPENAI_API_KEY"),
		SessionMaxAgeHours: getEnvInt("SESSION_MAX_AGE_HOURS", 6),
		Tuning:             loadTuning(),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if len(cfg.Providers) == 0 {
		return nil, errors.New("REASONING_PROVIDERS must name at least one provider")
	}
	for _, p := range cfg.Providers {
		if !supportedProviders[p] {
			return nil, errors.New("unsupported reasoning provider: " + p)
		}
	}
	return cfg, nil
}

func loadTuning() flow.Tuning {
	t := flow.DefaultTuning()
	t.MaxFollowUpsPerPreset = getEnvInt("MAX_FOLLOWUPS_PER_PRESET", t.MaxFollowUpsPerPreset)
	t.FollowUpCutoffSeconds = getEnvInt("FOLLOWUP_CUTOFF_SECONDS", t.FollowUpCutoffSeconds)
	t.MinSuggestedSeconds = getEnvInt("MIN_SUGGESTED_SECONDS", t.MinSuggestedSeconds)
	t.MaxSuggestedSeconds = getEnvInt("MAX_SUGGESTED_SECONDS", t.MaxSuggestedSeconds)
	return t
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(strings.ToLower(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
