package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	// Field level failures, always wrapped in a FieldError.
	ErrRequired          = errors.New("this field is required")
	ErrTooLong           = errors.New("value is too long")
	ErrDanglingReference = errors.New("referenced record does not exist")
)

// FieldError reports a rejected write on a single field.
type FieldError struct {
	Field string
	Err   error
	Limit int
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrTooLong) && e.Limit > 0 {
		return fmt.Sprintf("%s: ensure this value has at most %d characters", e.Field, e.Limit)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}

// IsFieldError reports whether err carries a FieldError anywhere in its chain.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
