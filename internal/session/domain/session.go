// Package domain defines the lock state machine vocabulary of the journal session.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

// State is the lock state of a journal session.
type State int

const (
	// StateLocked is the initial state. No master key is held.
	StateLocked State = iota
	// StateUnlocking means a master key is being derived and verified.
	StateUnlocking
	// StateUnlocked means the master key is held and content can be read and written.
	StateUnlocked
)

// String returns the lowercase name used in logs and API responses.
func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocking:
		return "unlocking"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Status is a point-in-time snapshot of a session. It never carries key material.
type Status struct {
	State           State
	AutoLockEnabled bool
	AutoLockTimeout time.Duration
	LastActivityAt  *time.Time
	UnlockedAt      *time.Time
}

// KeyCheck is the reference ciphertext used to reject a wrong password at unlock time.
//
// The reference is a random data key wrapped under the identity's master key;
// AEAD authentication fails when a different master key tries to unwrap it.
type KeyCheck struct {
	Identity   string
	WrappedKey cryptoDomain.WrappedKey
	CreatedAt  time.Time
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so the
// same mailbox always derives the same master key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity returns the storage identity for a normalized email: hex(sha256(email)).
// The plain email is never persisted.
func Identity(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}
