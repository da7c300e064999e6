package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

func TestKeyDerivationService_DeriveMasterKey(t *testing.T) {
	// Keep unit tests fast; the iteration count does not change the contract.
	kdf := NewKeyDerivationService(1000)

	t.Run("deterministic", func(t *testing.T) {
		k1, err := kdf.DeriveMasterKey("a@example.com", "pw1")
		require.NoError(t, err)
		k2, err := kdf.DeriveMasterKey("a@example.com", "pw1")
		require.NoError(t, err)

		assert.Len(t, k1.Key, cryptoDomain.KeySize)
		assert.Equal(t, k1.Key, k2.Key)
	})

	t.Run("different password yields different key", func(t *testing.T) {
		k1, err := kdf.DeriveMasterKey("a@example.com", "pw1")
		require.NoError(t, err)
		k2, err := kdf.DeriveMasterKey("a@example.com", "pw2")
		require.NoError(t, err)
		assert.NotEqual(t, k1.Key, k2.Key)
	})

	t.Run("email acts as salt", func(t *testing.T) {
		k1, err := kdf.DeriveMasterKey("a@example.com", "pw1")
		require.NoError(t, err)
		k2, err := kdf.DeriveMasterKey("b@example.com", "pw1")
		require.NoError(t, err)
		assert.NotEqual(t, k1.Key, k2.Key)
	})

	t.Run("iteration count changes the key", func(t *testing.T) {
		k1, err := kdf.DeriveMasterKey("a@example.com", "pw1")
		require.NoError(t, err)
		k2, err := NewKeyDerivationService(2000).DeriveMasterKey("a@example.com", "pw1")
		require.NoError(t, err)
		assert.NotEqual(t, k1.Key, k2.Key)
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "pw1"},
		{name: "empty password", email: "a@example.com", password: ""},
		{name: "both empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := kdf.DeriveMasterKey(tt.email, tt.password)
			assert.ErrorIs(t, err, cryptoDomain.ErrCredential)
			assert.Nil(t, key)
		})
	}
}

func TestNewKeyDerivationService_DefaultIterations(t *testing.T) {
	assert.Equal(t, DefaultKDFIterations, NewKeyDerivationService(0).iterations)
	assert.Equal(t, 5, NewKeyDerivationService(5).iterations)
}
