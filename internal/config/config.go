// Package config defines Dugout's configuration model and file loader.
package config

import (
	"time"
)

// Config is the root configuration for the Dugout agent server.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server" validate:"required"`
	MLB     MLBConfig     `mapstructure:"mlb" yaml:"mlb" validate:"required"`
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
//
// WriteTimeout must stay zero: the streaming endpoint holds the response
// open for the lifetime of a run and a write deadline would sever it.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1s"`
}

// MLBConfig contains the upstream MLB Stats API endpoints and the retry
// policy applied to every outbound call.
type MLBConfig struct {
	APIBaseV1  string        `mapstructure:"api_base_v1" yaml:"api_base_v1" validate:"required,url"`
	APIBaseV11 string        `mapstructure:"api_base_v1_1" yaml:"api_base_v1_1" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
	Retry      RetryConfig   `mapstructure:"retry" yaml:"retry"`
}

// RetryConfig mirrors the retry policy of the shared HTTP client.
type RetryConfig struct {
	MaxAttempts   int           `mapstructure:"max_attempts" yaml:"max_attempts" validate:"min=1,max=10"`
	BackoffFactor time.Duration `mapstructure:"backoff_factor" yaml:"backoff_factor" validate:"min=1ms"`
	RetryStatuses []int         `mapstructure:"retry_statuses" yaml:"retry_statuses" validate:"min=1"`
}

// AgentConfig contains workflow engine settings.
type AgentConfig struct {
	// MaxToolCycles caps the number of route->tool->route cycles in one
	// run. Once reached, the next routing decision is forced to respond.
	MaxToolCycles int `mapstructure:"max_tool_cycles" yaml:"max_tool_cycles" validate:"min=1,max=50"`

	// PollInterval is the stream publisher's idle heartbeat interval.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" validate:"min=10ms"`
}

// LLMConfig contains planner model configuration. APIKeyEnv names the
// environment variable holding the provider key; the key itself never
// appears in config files.
type LLMConfig struct {
	Provider  string `mapstructure:"provider" yaml:"provider"`
	Model     string `mapstructure:"model" yaml:"model"`
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
