package alarm

import (
	"errors"
	"fmt"
)

// InvalidTimeMessage is the user-facing text for a rejected draft.
const InvalidTimeMessage = "Please provide valid alarm time."

// Draft fields reported by ValidationError.
const (
	FieldHour   = "hour"
	FieldMinute = "minute"
	FieldZone   = "zone"
)

// ValidationError is returned when an alarm draft is malformed.
type ValidationError struct {
	// Field names the offending draft field.
	Field string
	// Reason describes what is wrong with it.
	Reason string
	// Err is the underlying cause, e.g. an unknown zone.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid alarm %s: %s: %v", e.Field, e.Reason, e.Err)
	}

	return fmt.Sprintf("invalid alarm %s: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user.
func (e *ValidationError) Message() string {
	return InvalidTimeMessage
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}
