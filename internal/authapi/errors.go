package authapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for bad credentials or a bad token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when a request body cannot be decoded.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Message)
}
