package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoService "github.com/allisson/journal/internal/crypto/service"
	"github.com/allisson/journal/internal/database"
	apperrors "github.com/allisson/journal/internal/errors"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

// entryUseCase implements EntryUseCase.
type entryUseCase struct {
	txManager database.TxManager
	entryRepo EntryRepository
	keys      sessionUseCase.KeyGuard
	cipher    recordCipher
	decryptor *ThreadDecryptor
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager database.TxManager,
	entryRepo EntryRepository,
	keys sessionUseCase.KeyGuard,
	envelope cryptoService.EnvelopeCrypto,
	decryptor *ThreadDecryptor,
) EntryUseCase {
	return &entryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		keys:      keys,
		cipher:    recordCipher{keys: keys, envelope: envelope},
		decryptor: decryptor,
	}
}

func (e *entryUseCase) Create(
	ctx context.Context,
	content, prompt string,
	parentID *uuid.UUID,
) (*journalDomain.Entry, error) {
	if err := e.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, journalDomain.ErrEmptyContent
	}

	wrapped, blobs, err := e.cipher.seal(ctx, content, prompt)
	if err != nil {
		return nil, err
	}

	entry := &journalDomain.Entry{
		ID:        uuid.Must(uuid.NewV7()),
		ParentID:  parentID,
		Content:   blobs[0],
		Prompt:    blobs[1],
		DataKey:   wrapped,
		CreatedAt: time.Now().UTC(),
	}

	err = e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if parentID != nil {
			if _, err := e.entryRepo.GetByID(txCtx, *parentID); err != nil {
				return err
			}
		}
		return e.entryRepo.Create(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (e *entryUseCase) GetThread(
	ctx context.Context,
	id uuid.UUID,
	policy journalDomain.DecryptPolicy,
) (*journalDomain.ThreadNode, error) {
	if err := e.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}

	root, err := e.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followUps, err := e.collectFollowUps(ctx, []uuid.UUID{root.ID})
	if err != nil {
		return nil, err
	}

	tree, err := e.decryptor.DecryptThread(ctx, root, followUps, policy)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, journalDomain.ErrThreadRootUnreadable
	}
	return tree, nil
}

func (e *entryUseCase) ListHistory(
	ctx context.Context,
	offset, limit int,
) ([]*journalDomain.ThreadNode, error) {
	if err := e.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}

	roots, err := e.entryRepo.ListRoots(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	rootIDs := make([]uuid.UUID, len(roots))
	for i, root := range roots {
		rootIDs[i] = root.ID
	}

	followUps, err := e.collectFollowUps(ctx, rootIDs)
	if err != nil {
		return nil, err
	}

	byParent := indexByParent(followUps)
	threads := make([]*journalDomain.ThreadNode, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxThreadFanOut)

	for i, root := range roots {
		g.Go(func() error {
			tree, err := e.decryptor.decryptIndexed(gctx, root, byParent, journalDomain.PolicySkip)
			if err != nil {
				return err
			}
			threads[i] = tree
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	history := make([]*journalDomain.ThreadNode, 0, len(threads))
	for _, tree := range threads {
		if tree != nil {
			history = append(history, tree)
		}
	}
	return history, nil
}

func (e *entryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := e.keys.EnsureUnlocked(); err != nil {
		return err
	}

	return e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := e.entryRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		followUps, err := e.collectFollowUps(txCtx, []uuid.UUID{id})
		if err != nil {
			return err
		}

		for _, followUp := range followUps {
			if err := e.entryRepo.Delete(txCtx, followUp.ID); err != nil {
				return err
			}
		}
		return e.entryRepo.Delete(txCtx, id)
	})
}

// collectFollowUps fetches every descendant of the given entries one tree
// level per query.
func (e *entryUseCase) collectFollowUps(
	ctx context.Context,
	rootIDs []uuid.UUID,
) ([]*journalDomain.Entry, error) {
	var followUps []*journalDomain.Entry
	seen := make(map[uuid.UUID]bool, len(rootIDs))
	for _, id := range rootIDs {
		seen[id] = true
	}

	level := rootIDs
	for len(level) > 0 {
		children, err := e.entryRepo.ListChildren(ctx, level)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list follow-ups")
		}

		next := make([]uuid.UUID, 0, len(children))
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			followUps = append(followUps, child)
			next = append(next, child.ID)
		}
		level = next
	}

	return followUps, nil
}
