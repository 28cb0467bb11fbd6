package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ConfigError names a single field that failed validation.
type ConfigError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every field failure instead of stopping at the
// first, the way goclaw's config.ValidationErrors does.
type ValidationErrors []ConfigError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, fe := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", fe.Error()))
	}
	return sb.String()
}

// Validate runs struct-tag validation over cfg and returns a
// ValidationErrors collecting every failing field, or nil if cfg is valid.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ConfigError{
			Field:   fe.Namespace(),
			Message: fe.Tag(),
			Value:   fe.Value(),
		})
	}
	return out
}
