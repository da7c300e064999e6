// Package usecase implements the journal's business logic: encrypting new
// records under fresh data keys and resolving encrypted threads into
// decrypted trees.
package usecase

import (
	"context"

	"github.com/google/uuid"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

// EntryRepository is the record store for entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *journalDomain.Entry) error
	// GetByID returns journalDomain.ErrEntryNotFound for missing or deleted entries.
	GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Entry, error)
	// ListChildren returns the live follow-ups of every given parent.
	ListChildren(ctx context.Context, parentIDs []uuid.UUID) ([]*journalDomain.Entry, error)
	// ListRoots returns live thread roots, newest first.
	ListRoots(ctx context.Context, offset, limit int) ([]*journalDomain.Entry, error)
	// Delete soft deletes an entry. Returns journalDomain.ErrEntryNotFound when nothing matched.
	Delete(ctx context.Context, id uuid.UUID) error
}

// FolderRepository is the record store for folders.
type FolderRepository interface {
	Create(ctx context.Context, folder *journalDomain.Folder) error
	GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Folder, error)
	List(ctx context.Context) ([]*journalDomain.Folder, error)
}

// GoalRepository is the record store for goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *journalDomain.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Goal, error)
	List(ctx context.Context) ([]*journalDomain.Goal, error)
}

// EntryUseCase manages journal entries and their threads.
type EntryUseCase interface {
	// Create encrypts and stores a new entry. parentID makes it a follow-up.
	Create(ctx context.Context, content, prompt string, parentID *uuid.UUID) (*journalDomain.Entry, error)

	// GetThread decrypts the entry with the given id and all of its follow-ups.
	GetThread(
		ctx context.Context,
		id uuid.UUID,
		policy journalDomain.DecryptPolicy,
	) (*journalDomain.ThreadNode, error)

	// ListHistory decrypts a page of threads under PolicySkip.
	ListHistory(ctx context.Context, offset, limit int) ([]*journalDomain.ThreadNode, error)

	// Delete soft deletes an entry together with its follow-ups.
	Delete(ctx context.Context, id uuid.UUID) error
}

// FolderUseCase manages encrypted folders.
type FolderUseCase interface {
	Create(ctx context.Context, name, description string) (*journalDomain.DecryptedFolder, error)
	Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedFolder, error)
	List(ctx context.Context) ([]*journalDomain.DecryptedFolder, error)
}

// GoalUseCase manages encrypted goals.
type GoalUseCase interface {
	Create(ctx context.Context, title, description string) (*journalDomain.DecryptedGoal, error)
	Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedGoal, error)
	List(ctx context.Context) ([]*journalDomain.DecryptedGoal, error)
}
