package domain

import (
	"github.com/allisson/journal/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so the HTTP layer can map them without knowing about cryptography.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// Master keys and data keys must be exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrCredential indicates an empty email or password was supplied to key derivation.
	ErrCredential = errors.Wrap(errors.ErrInvalidInput, "email and password are required")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong key used (e.g. a master key derived from a different password)
	//   - Ciphertext or IV has been tampered with (authentication failure)
	//   - Malformed base64 or truncated ciphertext
	//
	// The specific cause is never disclosed. The failure is always scoped to a
	// single field or record.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
