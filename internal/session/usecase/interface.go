// Package usecase implements the journal session: the lock state machine that
// owns the master key and gates every wrap and unwrap of a record's data key.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
)

// KeyCheckRepository persists the reference ciphertext per identity.
type KeyCheckRepository interface {
	// Get returns sessionDomain.ErrKeyCheckNotFound when the identity has no reference.
	Get(ctx context.Context, identity string) (*sessionDomain.KeyCheck, error)

	// Create stores the reference for an identity.
	Create(ctx context.Context, keyCheck *sessionDomain.KeyCheck) error
}

// KeyGuard is the narrow view of the session used by components that encrypt
// and decrypt records. It never exposes the master key itself.
type KeyGuard interface {
	// WrapDataKey wraps a data key under the master key. Fails with
	// sessionDomain.ErrSessionLocked unless the session is unlocked.
	WrapDataKey(ctx context.Context, dataKey *cryptoDomain.DataKey) (cryptoDomain.WrappedKey, error)

	// UnwrapDataKey unwraps a data key with the master key. Fails with
	// sessionDomain.ErrSessionLocked unless the session is unlocked and with
	// cryptoDomain.ErrDecryptionFailed when the master key does not match.
	UnwrapDataKey(ctx context.Context, wrapped cryptoDomain.WrappedKey) (*cryptoDomain.DataKey, error)

	// EnsureUnlocked returns sessionDomain.ErrSessionLocked unless the session is unlocked.
	EnsureUnlocked() error

	// RecordActivity refreshes the idle timer. It never prevents an explicit lock.
	RecordActivity()
}

// SessionUseCase is the full session surface.
type SessionUseCase interface {
	KeyGuard

	// Unlock derives the master key from the credentials and moves the session to
	// Unlocked. Any failure leaves the session Locked.
	Unlock(ctx context.Context, email, password string) error

	// Lock clears the master key and stops the auto-lock poller.
	Lock()

	// EndSession forces the Locked state regardless of the current state.
	EndSession()

	// SetAutoLock enables or disables idle auto-lock. timeoutMinutes must be
	// positive when enabled.
	SetAutoLock(enabled bool, timeoutMinutes int) error

	// State returns a snapshot of the session.
	State() sessionDomain.Status
}
