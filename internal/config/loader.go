package config

import (
	"bytes"
	"os"
	"regexp"

	"github.com/spf13/viper"

	"github.com/dugout-ai/dugout/internal/types"
)

// Loader loads configuration from YAML files.
type Loader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperLoader implements Loader using Viper.
type viperLoader struct {
	validator Validator
}

// NewLoader creates a Loader that validates every loaded configuration.
func NewLoader(validator Validator) Loader {
	return &viperLoader{validator: validator}
}

// envVarPattern matches ${VAR_NAME} references in config files.
var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Load reads, interpolates, unmarshals, and validates the config file at
// path. ${VAR} references are replaced with environment values before
// parsing; unset variables interpolate to the empty string.
func (l *viperLoader) Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
	}

	interpolated := envVarPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(interpolated)); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to parse config file", err)
	}

	// Start from defaults so partial config files stay valid.
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to unmarshal config", err)
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithDefaults behaves like Load, but returns the default
// configuration when the file does not exist.
func (l *viperLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := l.validator.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return l.Load(path)
}
