package values

import (
	"errors"
	"fmt"
)

// ValidationError represents a rejected value at construction time.
// Callers can correct the input and retry; it is never an application fault.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CurrencyMismatchError is returned by Money arithmetic across currencies.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

var ErrDivisionByZero = errors.New("money: division by zero")

// IsValidationError reports whether err (or anything it wraps) is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
