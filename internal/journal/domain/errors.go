package domain

import (
	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	"github.com/allisson/journal/internal/errors"
)

// Journal error definitions.
var (
	// ErrEntryNotFound indicates the entry does not exist or was deleted.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "entry not found")

	// ErrFolderNotFound indicates the folder does not exist.
	ErrFolderNotFound = errors.Wrap(errors.ErrNotFound, "folder not found")

	// ErrGoalNotFound indicates the goal does not exist.
	ErrGoalNotFound = errors.Wrap(errors.ErrNotFound, "goal not found")

	// ErrEmptyContent indicates an entry without content.
	ErrEmptyContent = errors.Wrap(errors.ErrInvalidInput, "entry content cannot be empty")

	// ErrThreadRootUnreadable indicates a thread whose root entry could not be
	// decrypted under the skip policy, leaving nothing to return.
	ErrThreadRootUnreadable = errors.Wrap(cryptoDomain.ErrDecryptionFailed, "thread root could not be decrypted")

	// ErrInvalidDecryptPolicy indicates an unknown decrypt policy.
	ErrInvalidDecryptPolicy = errors.Wrap(errors.ErrInvalidInput, "decrypt policy must be skip or report")
)
