// Package service provides the cryptographic services behind the journal's
// envelope encryption: AEAD ciphers, credential key derivation and the
// data key wrap/unwrap operations.
package service

import (
	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	// The nonce is always drawn from crypto/rand inside the call.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver turns user credentials into a MasterKey.
type KeyDeriver interface {
	// DeriveMasterKey returns cryptoDomain.ErrCredential if email or password is empty.
	DeriveMasterKey(email, password string) (*cryptoDomain.MasterKey, error)
}

// EnvelopeCrypto defines the per-record envelope encryption operations.
//
// Every decrypt failure is reported as cryptoDomain.ErrDecryptionFailed.
type EnvelopeCrypto interface {
	// GenerateDataKey returns a fresh random 256-bit DataKey.
	GenerateDataKey() (*cryptoDomain.DataKey, error)

	// EncryptText encrypts plaintext under the data key. Empty plaintext yields an empty blob.
	EncryptText(plaintext string, key *cryptoDomain.DataKey) (cryptoDomain.EncryptedBlob, error)

	// DecryptText decrypts a blob produced by EncryptText. An empty blob yields "".
	DecryptText(blob cryptoDomain.EncryptedBlob, key *cryptoDomain.DataKey) (string, error)

	// EncryptKey wraps a data key under the master key.
	EncryptKey(dataKey *cryptoDomain.DataKey, masterKey *cryptoDomain.MasterKey) (cryptoDomain.WrappedKey, error)

	// DecryptKey unwraps a data key with the master key.
	DecryptKey(wrapped cryptoDomain.WrappedKey, masterKey *cryptoDomain.MasterKey) (*cryptoDomain.DataKey, error)
}
