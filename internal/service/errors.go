package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two causes are deliberately indistinguishable to the
	// caller so login cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers a missing, unparseable, revoked, or orphaned
	// session token.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrNotFound covers a malformed id, a missing record, and an ownership
	// mismatch alike.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
