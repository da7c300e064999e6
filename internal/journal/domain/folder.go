package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

// Folder groups entries. Name and Description are encrypted under the folder's own DataKey.
type Folder struct {
	ID          uuid.UUID
	Name        cryptoDomain.EncryptedBlob
	Description cryptoDomain.EncryptedBlob
	DataKey     cryptoDomain.WrappedKey
	CreatedAt   time.Time
}

// DecryptedFolder is the plaintext view of a Folder.
type DecryptedFolder struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Goal is a personal goal. Title and Description are encrypted under the goal's own DataKey.
type Goal struct {
	ID          uuid.UUID
	Title       cryptoDomain.EncryptedBlob
	Description cryptoDomain.EncryptedBlob
	DataKey     cryptoDomain.WrappedKey
	CreatedAt   time.Time
}

// DecryptedGoal is the plaintext view of a Goal.
type DecryptedGoal struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
}
