package errs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("item %d: quantity must be positive", 2)

	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "validation error: item 2: quantity must be positive")
}

func TestNotFound(t *testing.T) {
	err := NotFound("product", 99)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrValidation))
	assert.EqualError(t, err, "not found: product 99")
}

func TestCreation_KeepsCause(t *testing.T) {
	err := Creation("insert order", context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrCreation)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
