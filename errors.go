package valobj

import (
	"errors"
	"fmt"
)

// ErrNilArgument is returned by generated constructors and builders when a
// not-null property receives a nil value.
var ErrNilArgument = errors.New("valobj: nil argument")

// NilArgumentError reports the property that failed its not-null check.
type NilArgumentError struct {
	// Type is the value class name.
	Type string
	// Param is the property name.
	Param string
}

// Error returns the error string.
func (e *NilArgumentError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("valobj: %s must not be nil", e.Param)
	}
	return fmt.Sprintf("valobj: %s.%s must not be nil", e.Type, e.Param)
}

// Is reports whether the target error matches NilArgumentError.
// This allows errors.Is(err, ErrNilArgument) to return true.
func (e *NilArgumentError) Is(err error) bool {
	return err == ErrNilArgument
}

// NewNilArgumentError returns a new NilArgumentError.
func NewNilArgumentError(typ, param string) *NilArgumentError {
	return &NilArgumentError{Type: typ, Param: param}
}

// IsNilArgument returns true if the error is a NilArgumentError.
func IsNilArgument(err error) bool {
	if err == nil {
		return false
	}
	var e *NilArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrNilArgument)
}
