package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "locked", StateLocked.String())
	assert.Equal(t, "unlocking", StateUnlocking.String())
	assert.Equal(t, "unlocked", StateUnlocked.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestIdentity(t *testing.T) {
	id := Identity("a@example.com")
	assert.Len(t, id, 64)
	assert.Equal(t, id, Identity(NormalizeEmail("  A@Example.com ")))
	assert.NotEqual(t, id, Identity("b@example.com"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@example.com", NormalizeEmail(" A@Example.COM\n"))
	assert.Empty(t, NormalizeEmail("   "))
}
