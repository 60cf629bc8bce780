// Package validation defines the error returned when a learner action is
// rejected before any state is touched.
package validation

import "fmt"

// Error reports an invalid input. Operations that return it have not
// mutated the progress record.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Errorf builds a validation Error for field with a formatted reason.
func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}
