package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_ToleranceRule(t *testing.T) {
	// Arrange
	v, err := NewValidator()
	require.NoError(t, err)
	type settings struct {
		Tolerance float64 `validate:"tolerance"`
	}

	// Act & Assert
	assert.NoError(t, v.Validate(settings{Tolerance: 0.001}))
	assert.Error(t, v.Validate(settings{Tolerance: 0}))
	assert.Error(t, v.Validate(settings{Tolerance: 1}))
}

func TestRegisterRules_ReportsRegistrationFailure(t *testing.T) {
	rules := map[string]validator.Func{"": func(validator.FieldLevel) bool { return true }}

	err := registerRules(validator.New(), rules)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to register ""`)
}
