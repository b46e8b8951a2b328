// Package errs holds the error kinds the service layer reports to transports.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input with a bad shape or value.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown product, order, order item or user.
	ErrNotFound = errors.New("not found")
	// ErrCreation marks a persistence failure while assembling an order.
	ErrCreation = errors.New("creation error")
)

// Validation returns an ErrValidation with a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound naming the missing entity.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

// Creation wraps err as an ErrCreation while keeping it inspectable.
func Creation(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCreation, stage, err)
}
