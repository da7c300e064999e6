// Package domain defines the journal's encrypted records and the decrypted
// thread tree returned to callers.
//
// Every record carries exactly one WrappedKey. Its DataKey is fresh per record
// and never shared, not even between an entry and its follow-ups.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
)

// Entry is a journal entry as stored. A nil ParentID marks a thread root;
// otherwise the entry is a follow-up of ParentID.
type Entry struct {
	ID        uuid.UUID
	ParentID  *uuid.UUID
	Content   cryptoDomain.EncryptedBlob
	Prompt    cryptoDomain.EncryptedBlob
	DataKey   cryptoDomain.WrappedKey
	CreatedAt time.Time
	DeletedAt *time.Time
}

// IsRoot reports whether the entry starts a thread.
func (e *Entry) IsRoot() bool {
	return e.ParentID == nil
}

// ThreadNode is one decrypted entry and its resolved follow-ups, ordered by
// CreatedAt ascending.
//
// Under PolicyReport a record that could not be decrypted is kept with
// DecryptionFailed set and empty Content and Prompt.
type ThreadNode struct {
	ID               uuid.UUID
	ParentID         *uuid.UUID
	Content          string
	Prompt           string
	CreatedAt        time.Time
	DecryptionFailed bool
	Children         []*ThreadNode
}

// Depth returns the number of levels in the subtree rooted at n.
func (n *ThreadNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, child := range n.Children {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *ThreadNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}
