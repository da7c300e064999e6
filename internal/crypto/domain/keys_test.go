package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/journal/internal/errors"
)

func TestZero(t *testing.T) {
	password := []byte("correct horse battery staple")
	Zero(password)
	assert.Equal(t, make([]byte, len(password)), password)

	assert.NotPanics(t, func() { Zero(nil) })
}

func TestMasterKey_Destroy(t *testing.T) {
	key := []byte("12345678901234567890123456789012")
	mk := &MasterKey{Key: key}

	mk.Destroy()

	assert.Nil(t, mk.Key)
	assert.Equal(t, make([]byte, KeySize), key)

	var nilKey *MasterKey
	assert.NotPanics(t, func() { nilKey.Destroy() })
}

func TestDataKey_Destroy(t *testing.T) {
	key := []byte("abcdefghijklmnopqrstuvwxyz012345")
	dk := &DataKey{Key: key, Algorithm: AESGCM}

	dk.Destroy()

	assert.Nil(t, dk.Key)
	assert.Equal(t, make([]byte, KeySize), key)
}

func TestEncryptedBlob_IsEmpty(t *testing.T) {
	assert.True(t, EncryptedBlob{}.IsEmpty())
	assert.False(t, EncryptedBlob{Ciphertext: "abc", IV: "def"}.IsEmpty())
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{input: "aes-gcm", want: AESGCM},
		{input: "chacha20-poly1305", want: ChaCha20},
		{input: "aes-cbc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			alg, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, alg)
		})
	}
}
