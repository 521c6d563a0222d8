package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewConfigurationError("Point", RuleOperatorsRequireEquals, "IncludeOperatorEquals", "equals is excluded")

		assert.Contains(t, err.Error(), "valobj: configuration error")
		assert.Contains(t, err.Error(), "class Point")
		assert.Contains(t, err.Error(), "[OperatorsRequireEquals]")
		assert.Contains(t, err.Error(), "(IncludeOperatorEquals)")
		assert.Contains(t, err.Error(), "equals is excluded")
	})

	t.Run("Error message with rule only", func(t *testing.T) {
		err := &ConfigurationError{Rule: RuleConflictingNullCheckPlacement}
		assert.Equal(t, "valobj: configuration error [ConflictingNullCheckPlacement]", err.Error())
	})

	t.Run("Is matches ErrConfiguration", func(t *testing.T) {
		err := NewConfigurationError("Point", RuleOperatorsRequireEquals, "", "")
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.False(t, errors.Is(err, ErrMalformedInput))
	})

	t.Run("IsConfigurationError helper", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewConfigurationError("Point", RuleOperatorsRequireEquals, "", ""))
		assert.True(t, IsConfigurationError(err))
		assert.False(t, IsConfigurationError(errors.New("other")))
	})

	t.Run("IsRuleViolation helper", func(t *testing.T) {
		err := NewConfigurationError("Point", RuleConflictingNullCheckPlacement, "x", "")
		assert.True(t, IsRuleViolation(err, RuleConflictingNullCheckPlacement))
		assert.False(t, IsRuleViolation(err, RuleOperatorsRequireEquals))
		assert.False(t, IsRuleViolation(errors.New("other"), RuleConflictingNullCheckPlacement))
	})
}

func TestMalformedInputError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewMalformedInputError("Point", "x", "missing type", cause)

		assert.Contains(t, err.Error(), "valobj: malformed input")
		assert.Contains(t, err.Error(), "class Point")
		assert.Contains(t, err.Error(), "property x")
		assert.Contains(t, err.Error(), "missing type")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message without class", func(t *testing.T) {
		err := NewMalformedInputError("", "", "missing name", nil)
		assert.Equal(t, "valobj: malformed input: missing name", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewMalformedInputError("Point", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrMalformedInput", func(t *testing.T) {
		err := NewMalformedInputError("Point", "", "", nil)
		assert.True(t, errors.Is(err, ErrMalformedInput))
	})

	t.Run("IsMalformedInput helper", func(t *testing.T) {
		assert.True(t, IsMalformedInput(NewMalformedInputError("Point", "", "", nil)))
		assert.False(t, IsMalformedInput(errors.New("other")))
	})
}

func TestOptionError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewOptionError("Workers", 0, "workers must be at least 1")

		assert.Contains(t, err.Error(), "valobj: option error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "value: 0")
		assert.Contains(t, err.Error(), "workers must be at least 1")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewOptionError("Logger", nil, "logger cannot be nil")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrInvalidOption", func(t *testing.T) {
		assert.True(t, errors.Is(NewOptionError("Logger", nil, ""), ErrInvalidOption))
	})

	t.Run("IsOptionError helper", func(t *testing.T) {
		assert.True(t, IsOptionError(NewOptionError("Logger", nil, "")))
		assert.False(t, IsOptionError(errors.New("other")))
	})
}
