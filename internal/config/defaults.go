package config

import "time"

// Upstream defaults match the public MLB Stats API.
const (
	DefaultAPIBaseV1  = "https://statsapi.mlb.com/api/v1"
	DefaultAPIBaseV11 = "https://statsapi.mlb.com/api/v1.1"
)

// DefaultConfig returns the configuration used when no config file is
// present. The retry policy reproduces the reference policy: 3 attempts,
// 1s backoff factor, server-side transient statuses only.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		MLB: MLBConfig{
			APIBaseV1:  DefaultAPIBaseV1,
			APIBaseV11: DefaultAPIBaseV11,
			Timeout:    30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:   3,
				BackoffFactor: time.Second,
				RetryStatuses: []int{500, 502, 503, 504},
			},
		},
		Agent: AgentConfig{
			MaxToolCycles: 5,
			PollInterval:  100 * time.Millisecond,
		},
		LLM: LLMConfig{
			Provider:  "google",
			Model:     "gemini-1.5-pro",
			APIKeyEnv: "GOOGLE_API_KEY",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
