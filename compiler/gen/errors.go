package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrConfiguration indicates a contradiction between generation options.
	ErrConfiguration = errors.New("valobj: configuration error")
	// ErrMalformedInput indicates a class declaration that is structurally invalid.
	ErrMalformedInput = errors.New("valobj: malformed input")
	// ErrInvalidOption indicates an invalid engine option.
	ErrInvalidOption = errors.New("valobj: invalid option")
)

// Rule names a configuration rule enforced by the engine.
type Rule string

const (
	// RuleConflictingNullCheckPlacement is violated by a property that asks
	// for both a Pre and a Post null check.
	RuleConflictingNullCheckPlacement Rule = "ConflictingNullCheckPlacement"
	// RuleOperatorsRequireEquals is violated by a class that includes the
	// equality operators while excluding Equals.
	RuleOperatorsRequireEquals Rule = "OperatorsRequireEquals"
	// RuleDeadOption is reported, never raised, for an option that has no
	// effect given the other options of the class.
	RuleDeadOption Rule = "DeadOption"
)

// ConfigurationError reports a rule violation in the options of a class.
type ConfigurationError struct {
	Class     string // Class name
	Rule      Rule   // Violated rule
	Offending string // Offending option or property
	Message   string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("valobj: configuration error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Rule != "" {
		fmt.Fprintf(&b, " [%s]", e.Rule)
	}
	if e.Offending != "" {
		b.WriteString(" (")
		b.WriteString(e.Offending)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(class string, rule Rule, offending, message string) *ConfigurationError {
	return &ConfigurationError{
		Class:     class,
		Rule:      rule,
		Offending: offending,
		Message:   message,
	}
}

// MalformedInputError reports a class declaration that is missing required
// identity fields or carries an unusable property.
type MalformedInputError struct {
	Class    string
	Property string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString("valobj: malformed input")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for MalformedInputError.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NewMalformedInputError creates a new MalformedInputError.
func NewMalformedInputError(class, property, message string, cause error) *MalformedInputError {
	return &MalformedInputError{
		Class:    class,
		Property: property,
		Message:  message,
		Cause:    cause,
	}
}

// OptionError represents an invalid engine option.
type OptionError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("valobj: option error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("valobj: option error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for OptionError.
func (e *OptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// NewOptionError creates a new OptionError.
func NewOptionError(option string, value any, message string) *OptionError {
	return &OptionError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsConfigurationError reports whether the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsRuleViolation reports whether the error is a ConfigurationError for the
// given rule.
func IsRuleViolation(err error, rule Rule) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr) && cfgErr.Rule == rule
}

// IsMalformedInput reports whether the error is a MalformedInputError.
func IsMalformedInput(err error) bool {
	var inErr *MalformedInputError
	return errors.As(err, &inErr)
}

// IsOptionError reports whether the error is an OptionError.
func IsOptionError(err error) bool {
	var optErr *OptionError
	return errors.As(err, &optErr)
}
