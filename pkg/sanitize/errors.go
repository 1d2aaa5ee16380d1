package sanitize

import "fmt"

// ValidationError indicates the caller supplied malformed or unsafe
// input. It is not retryable without changing the input.
type ValidationError struct {
	// Op names the operation that rejected the input ("url", "path",
	// "json", "number", "string").
	Op string

	// Message describes the rejection.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("sanitize %s: %s", e.Op, e.Message)
}

// validationErrorf builds a *ValidationError with a formatted message.
func validationErrorf(op, format string, args ...any) *ValidationError {
	return &ValidationError{Op: op, Message: fmt.Sprintf(format, args...)}
}
