package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

// EnvelopeService implements EnvelopeCrypto on top of an AEADManager.
//
// Ciphertext and IV are stored as standard base64. A wrapped key is the AEAD
// encryption of the base64 form of the raw data key bytes, so wrapped keys and
// text fields share one storage format.
type EnvelopeService struct {
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewEnvelopeService creates an EnvelopeService generating data keys for alg.
func NewEnvelopeService(aeadManager AEADManager, alg cryptoDomain.Algorithm) *EnvelopeService {
	return &EnvelopeService{aeadManager: aeadManager, algorithm: alg}
}

// GenerateDataKey returns a fresh random 256-bit DataKey for the configured algorithm.
func (e *EnvelopeService) GenerateDataKey() (*cryptoDomain.DataKey, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate data key: %w", err)
	}
	return &cryptoDomain.DataKey{Key: key, Algorithm: e.algorithm}, nil
}

// EncryptText encrypts plaintext under the data key.
func (e *EnvelopeService) EncryptText(
	plaintext string,
	key *cryptoDomain.DataKey,
) (cryptoDomain.EncryptedBlob, error) {
	if key == nil {
		return cryptoDomain.EncryptedBlob{}, cryptoDomain.ErrInvalidKeySize
	}
	return e.seal([]byte(plaintext), key.Key, key.Algorithm)
}

// DecryptText decrypts a blob produced by EncryptText.
func (e *EnvelopeService) DecryptText(
	blob cryptoDomain.EncryptedBlob,
	key *cryptoDomain.DataKey,
) (string, error) {
	if blob.IsEmpty() {
		return "", nil
	}
	if key == nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := e.open(blob, key.Key, key.Algorithm)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptKey wraps dataKey under masterKey using the data key's algorithm.
func (e *EnvelopeService) EncryptKey(
	dataKey *cryptoDomain.DataKey,
	masterKey *cryptoDomain.MasterKey,
) (cryptoDomain.WrappedKey, error) {
	if dataKey == nil || masterKey == nil || len(dataKey.Key) != cryptoDomain.KeySize {
		return cryptoDomain.WrappedKey{}, cryptoDomain.ErrInvalidKeySize
	}

	encoded := base64.StdEncoding.EncodeToString(dataKey.Key)
	blob, err := e.seal([]byte(encoded), masterKey.Key, dataKey.Algorithm)
	if err != nil {
		return cryptoDomain.WrappedKey{}, err
	}

	return cryptoDomain.WrappedKey{EncryptedBlob: blob, Algorithm: dataKey.Algorithm}, nil
}

// DecryptKey unwraps a data key. A wrong master key yields ErrDecryptionFailed.
func (e *EnvelopeService) DecryptKey(
	wrapped cryptoDomain.WrappedKey,
	masterKey *cryptoDomain.MasterKey,
) (*cryptoDomain.DataKey, error) {
	if masterKey == nil || wrapped.IsEmpty() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	encoded, err := e.open(wrapped.EncryptedBlob, masterKey.Key, wrapped.Algorithm)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(encoded)

	key := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(key, encoded)
	if err != nil || n != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return &cryptoDomain.DataKey{Key: key[:n], Algorithm: wrapped.Algorithm}, nil
}

// seal returns an empty blob for empty plaintext without touching the cipher.
func (e *EnvelopeService) seal(
	plaintext, key []byte,
	alg cryptoDomain.Algorithm,
) (cryptoDomain.EncryptedBlob, error) {
	if len(plaintext) == 0 {
		return cryptoDomain.EncryptedBlob{}, nil
	}

	cipher, err := e.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}

	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
	if err != nil {
		return cryptoDomain.EncryptedBlob{}, err
	}

	return cryptoDomain.EncryptedBlob{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(nonce),
	}, nil
}

// open maps every failure to ErrDecryptionFailed.
func (e *EnvelopeService) open(
	blob cryptoDomain.EncryptedBlob,
	key []byte,
	alg cryptoDomain.Algorithm,
) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(blob.Ciphertext)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	nonce, err := base64.StdEncoding.DecodeString(blob.IV)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	cipher, err := e.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := cipher.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
