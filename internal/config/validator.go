package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dugout-ai/dugout/internal/types"
)

// Validator validates a loaded configuration.
type Validator interface {
	Validate(cfg *Config) error
}

// structValidator implements Validator using struct tag validation.
type structValidator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator backed by go-playground/validator.
func NewValidator() Validator {
	return &structValidator{validate: validator.New()}
}

// Validate checks struct tags and cross-field constraints, returning a
// CONFIG_VALIDATION_FAILED error describing every violation found.
func (v *structValidator) Validate(cfg *Config) error {
	if cfg == nil {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "config cannot be nil")
	}

	if err := v.validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", ve.Namespace(), ve.Tag()))
			}
			return types.NewError(types.CONFIG_VALIDATION_FAILED, fmt.Sprintf("invalid configuration: %v", msgs))
		}
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "invalid configuration", err)
	}

	for _, status := range cfg.MLB.Retry.RetryStatuses {
		if status < 400 || status > 599 {
			return types.NewError(types.CONFIG_VALIDATION_FAILED,
				fmt.Sprintf("retry status %d is not an HTTP error status", status))
		}
	}

	return nil
}
