package services

import (
	"errors"
	"fmt"

	"github.com/joejung/mira/store"
)

var (
	// ErrNotFound mirrors the store sentinel so handlers only import this
	// package for the error taxonomy.
	ErrNotFound = store.ErrNotFound

	// ErrDuplicateEmail rejects registration with an email already on file.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two causes are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// ValidationError reports a malformed or out-of-enum field value. It is
// raised before anything reaches the entity store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
