package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADManagerService_CreateCipher(t *testing.T) {
	manager := NewAEADManager()
	validKey := randomKey(t)

	t.Run("create AES-GCM cipher", func(t *testing.T) {
		cipher, err := manager.CreateCipher(validKey, cryptoDomain.AESGCM)
		require.NoError(t, err)

		_, ok := cipher.(*AESGCMCipher)
		assert.True(t, ok, "cipher should be of type *AESGCMCipher")
	})

	t.Run("create ChaCha20-Poly1305 cipher", func(t *testing.T) {
		cipher, err := manager.CreateCipher(validKey, cryptoDomain.ChaCha20)
		require.NoError(t, err)

		_, ok := cipher.(*ChaCha20Poly1305Cipher)
		assert.True(t, ok, "cipher should be of type *ChaCha20Poly1305Cipher")
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := manager.CreateCipher(validKey, cryptoDomain.Algorithm("aes-cbc"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})

	invalidKeys := map[string][]byte{
		"too short": make([]byte, 16),
		"too long":  make([]byte, 64),
		"empty":     {},
		"nil":       nil,
	}
	for name, key := range invalidKeys {
		t.Run("invalid key size "+name, func(t *testing.T) {
			_, err := manager.CreateCipher(key, cryptoDomain.AESGCM)
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		})
	}
}

func TestAEADCiphers(t *testing.T) {
	manager := NewAEADManager()

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			key := randomKey(t)
			cipher, err := manager.CreateCipher(key, alg)
			require.NoError(t, err)

			plaintext := []byte("dear diary")
			aad := []byte("entry-1")

			ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
			require.NoError(t, err)
			assert.Len(t, nonce, 12)
			assert.Len(t, ciphertext, len(plaintext)+16)

			decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)

			t.Run("fresh nonce per call", func(t *testing.T) {
				ciphertext2, nonce2, err := cipher.Encrypt(plaintext, aad)
				require.NoError(t, err)
				assert.NotEqual(t, nonce, nonce2)
				assert.NotEqual(t, ciphertext, ciphertext2)
			})

			t.Run("wrong aad", func(t *testing.T) {
				_, err := cipher.Decrypt(ciphertext, nonce, []byte("entry-2"))
				assert.Error(t, err)
			})

			t.Run("tampered ciphertext", func(t *testing.T) {
				tampered := append([]byte(nil), ciphertext...)
				tampered[0] ^= 0xFF
				_, err := cipher.Decrypt(tampered, nonce, aad)
				assert.Error(t, err)
			})

			t.Run("truncated nonce", func(t *testing.T) {
				_, err := cipher.Decrypt(ciphertext, nonce[:4], aad)
				assert.Error(t, err)
			})

			t.Run("wrong key", func(t *testing.T) {
				other, err := manager.CreateCipher(randomKey(t), alg)
				require.NoError(t, err)
				_, err = other.Decrypt(ciphertext, nonce, aad)
				assert.Error(t, err)
			})
		})
	}
}

func TestNewChaCha20Poly1305_InvalidKey(t *testing.T) {
	cipher, err := NewChaCha20Poly1305(make([]byte, 16))
	assert.Error(t, err)
	assert.Nil(t, cipher)
}
