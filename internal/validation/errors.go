package validation

import "errors"

// ErrInvalid matches every *Error with errors.Is.
var ErrInvalid = errors.New("invalid input")

// Error is a validation failure whose message is shown to the user as is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, message string) error {
	return &Error{Field: field, Message: message}
}
