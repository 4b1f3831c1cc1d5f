package validate

import (
	"fmt"
	"strings"
)

// ValidationError reports every violation found in a value. Errors holds
// field-qualified messages in engine order.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
}

func newValidationError(message string, errs ...string) *ValidationError {
	return &ValidationError{Message: message, Errors: errs}
}

// Result is the non-failing form of a validation. Data is set only when
// Valid is true.
type Result[T any] struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
	Data   *T       `json:"data,omitempty"`
}
