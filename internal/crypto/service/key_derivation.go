package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

// DefaultKDFIterations is the PBKDF2 iteration count used when none is configured.
const DefaultKDFIterations = 100000

// KeyDerivationService derives master keys with PBKDF2-HMAC-SHA256.
//
// The salt is sha256(email), so the same credentials always produce the same
// master key and no salt has to be stored anywhere.
type KeyDerivationService struct {
	iterations int
}

// NewKeyDerivationService creates a KeyDerivationService. A non-positive
// iteration count falls back to DefaultKDFIterations.
func NewKeyDerivationService(iterations int) *KeyDerivationService {
	if iterations <= 0 {
		iterations = DefaultKDFIterations
	}
	return &KeyDerivationService{iterations: iterations}
}

// DeriveMasterKey derives a 256-bit master key from the credentials.
func (k *KeyDerivationService) DeriveMasterKey(email, password string) (*cryptoDomain.MasterKey, error) {
	if email == "" || password == "" {
		return nil, cryptoDomain.ErrCredential
	}

	salt := sha256.Sum256([]byte(email))
	key := pbkdf2.Key([]byte(password), salt[:], k.iterations, cryptoDomain.KeySize, sha256.New)

	return &cryptoDomain.MasterKey{Key: key}, nil
}
