package app

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected by a service.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates that the requested record does not exist for the user.
	ErrNotFound = errors.New("not found")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
