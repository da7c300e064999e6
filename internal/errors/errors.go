// Package errors defines the sentinel errors shared by every domain package.
//
// Domain packages wrap these sentinels with their own message, for example
// Wrap(ErrNotFound, "entry not found"), and the HTTP layer maps the sentinel
// found in the chain to a status code. Infrastructure errors are never
// matched and surface as internal errors.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist or was deleted.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the operation conflicts with the current state.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input failed validation or could not be decrypted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the supplied credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLocked indicates the journal session is locked and content cannot be read or written.
	ErrLocked = errors.New("locked")
)

// Wrap annotates err with message and keeps it matchable with Is. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
