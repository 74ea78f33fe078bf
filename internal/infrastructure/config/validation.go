package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// customRules are the pricer's validation tags
var customRules = map[string]validator.Func{
	// tolerance: a convergence threshold strictly between 0 and 1
	"tolerance": func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f > 0 && f < 1
	},
}

// NewValidator creates a new validator instance with the pricer's custom rules
func NewValidator() (*Validator, error) {
	v := validator.New()
	if err := registerRules(v, customRules); err != nil {
		return nil, err
	}
	return &Validator{
		validate: v,
	}, nil
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	return v.Validate(cfg)
}
