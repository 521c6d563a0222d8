package valobj

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilArgumentError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := NewNilArgumentError("Person", "name")
		assert.Equal(t, "valobj: Person.name must not be nil", err.Error())
	})

	t.Run("Error message without type", func(t *testing.T) {
		err := &NilArgumentError{Param: "name"}
		assert.Equal(t, "valobj: name must not be nil", err.Error())
	})

	t.Run("Is matches ErrNilArgument", func(t *testing.T) {
		err := NewNilArgumentError("Person", "name")
		assert.True(t, errors.Is(err, ErrNilArgument))
		assert.False(t, errors.Is(err, errors.New("other")))
	})

	t.Run("IsNilArgument helper", func(t *testing.T) {
		assert.True(t, IsNilArgument(NewNilArgumentError("Person", "name")))
		assert.True(t, IsNilArgument(fmt.Errorf("wrapped: %w", NewNilArgumentError("Person", "name"))))
		assert.True(t, IsNilArgument(ErrNilArgument))
		assert.False(t, IsNilArgument(errors.New("other")))
		assert.False(t, IsNilArgument(nil))
	})
}
