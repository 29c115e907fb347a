package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("failed to delete subject: %w", NewConflict("blocked"))

	assert.Equal(t, ErrConflict, CodeOf(wrapped))
	assert.Equal(t, ErrInternal, CodeOf(errors.New("boom")))
	assert.True(t, Is(NewNotFound("Patient not found"), ErrNotFound))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Patient not found", Message(fmt.Errorf("get: %w", NewNotFound("Patient not found"))))
	assert.Equal(t, "connection refused", Message(errors.New("connection refused")))

	internal := NewInternal(errors.New("socket closed"))
	assert.Equal(t, "internal server error: socket closed", Message(internal))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewValidation("invalid id", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid id: cause", err.Error())
}
