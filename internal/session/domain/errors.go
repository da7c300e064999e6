package domain

import (
	"github.com/allisson/journal/internal/errors"
)

// Session error definitions.
var (
	// ErrInvalidCredentials indicates the derived master key failed the key check.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrSessionLocked indicates journal content was requested while the session is not unlocked.
	ErrSessionLocked = errors.Wrap(errors.ErrLocked, "journal session is locked")

	// ErrUnlockInProgress indicates a concurrent unlock attempt is already running.
	ErrUnlockInProgress = errors.Wrap(errors.ErrConflict, "unlock already in progress")

	// ErrKeyCheckNotFound indicates no reference ciphertext exists for the identity.
	ErrKeyCheckNotFound = errors.Wrap(errors.ErrNotFound, "key check not found")

	// ErrInvalidAutoLockTimeout indicates an enabled auto-lock with a non-positive timeout.
	ErrInvalidAutoLockTimeout = errors.Wrap(errors.ErrInvalidInput, "auto-lock timeout must be positive")
)
