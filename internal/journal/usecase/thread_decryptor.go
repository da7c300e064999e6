package usecase

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	cryptoService "github.com/allisson/journal/internal/crypto/service"
	apperrors "github.com/allisson/journal/internal/errors"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

// maxThreadFanOut bounds concurrent child decryptions per parent.
const maxThreadFanOut = 8

// ThreadDecryptor rebuilds a thread from a root entry and a pool of candidate
// follow-ups, decrypting every record with its own data key.
//
// A decryption failure on one record never aborts the tree; it is handled by
// the DecryptPolicy. Session and context errors abort the whole call.
type ThreadDecryptor struct {
	cipher recordCipher
	logger *slog.Logger
}

// NewThreadDecryptor creates a ThreadDecryptor that unwraps data keys through keys.
func NewThreadDecryptor(
	keys sessionUseCase.KeyGuard,
	envelope cryptoService.EnvelopeCrypto,
	logger *slog.Logger,
) *ThreadDecryptor {
	return &ThreadDecryptor{
		cipher: recordCipher{keys: keys, envelope: envelope},
		logger: logger,
	}
}

// DecryptThread returns the decrypted tree rooted at root. Candidates that are
// not descendants of root are ignored.
//
// Under PolicySkip a root that fails to decrypt yields a nil tree and no error.
// Nothing is returned once ctx is done, even if every record was decrypted.
func (d *ThreadDecryptor) DecryptThread(
	ctx context.Context,
	root *journalDomain.Entry,
	candidates []*journalDomain.Entry,
	policy journalDomain.DecryptPolicy,
) (*journalDomain.ThreadNode, error) {
	return d.decryptIndexed(ctx, root, indexByParent(candidates), policy)
}

// decryptIndexed is DecryptThread over a pool already grouped by parent id, so
// a page of threads can share one index.
func (d *ThreadDecryptor) decryptIndexed(
	ctx context.Context,
	root *journalDomain.Entry,
	byParent map[uuid.UUID][]*journalDomain.Entry,
	policy journalDomain.DecryptPolicy,
) (*journalDomain.ThreadNode, error) {
	adjacency := buildAdjacency(root, byParent)

	tree, err := d.decryptSubtree(ctx, root, adjacency, policy)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tree, nil
}

func (d *ThreadDecryptor) decryptSubtree(
	ctx context.Context,
	entry *journalDomain.Entry,
	adjacency map[uuid.UUID][]*journalDomain.Entry,
	policy journalDomain.DecryptPolicy,
) (*journalDomain.ThreadNode, error) {
	node := &journalDomain.ThreadNode{
		ID:        entry.ID,
		ParentID:  entry.ParentID,
		CreatedAt: entry.CreatedAt,
	}

	fields, err := d.cipher.open(ctx, entry.DataKey, entry.Content, entry.Prompt)
	switch {
	case err == nil:
		node.Content, node.Prompt = fields[0], fields[1]
	case apperrors.Is(err, cryptoDomain.ErrDecryptionFailed):
		d.logger.Warn("entry decryption failed",
			slog.String("entry_id", entry.ID.String()),
			slog.String("policy", string(policy)),
			slog.Int("follow_ups", len(adjacency[entry.ID])))
		if policy == journalDomain.PolicySkip {
			return nil, nil
		}
		node.DecryptionFailed = true
	default:
		return nil, err
	}

	children := adjacency[entry.ID]
	if len(children) == 0 {
		return node, nil
	}

	resolved := make([]*journalDomain.ThreadNode, len(children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxThreadFanOut)

	for i, child := range children {
		g.Go(func() error {
			childNode, err := d.decryptSubtree(gctx, child, adjacency, policy)
			if err != nil {
				return err
			}
			resolved[i] = childNode
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	node.Children = make([]*journalDomain.ThreadNode, 0, len(resolved))
	for _, childNode := range resolved {
		if childNode != nil {
			node.Children = append(node.Children, childNode)
		}
	}
	return node, nil
}

// indexByParent groups candidates by parent id. Roots are dropped.
func indexByParent(candidates []*journalDomain.Entry) map[uuid.UUID][]*journalDomain.Entry {
	byParent := make(map[uuid.UUID][]*journalDomain.Entry)
	for _, candidate := range candidates {
		if candidate.ParentID == nil {
			continue
		}
		byParent[*candidate.ParentID] = append(byParent[*candidate.ParentID], candidate)
	}
	return byParent
}

// buildAdjacency maps each parent id reachable from root to its children ordered
// by CreatedAt ascending. Walking breadth-first with a visited set keeps a
// malformed pool (cycles, duplicates) from producing an infinite tree. byParent
// is only read, and the returned slices are fresh.
func buildAdjacency(
	root *journalDomain.Entry,
	byParent map[uuid.UUID][]*journalDomain.Entry,
) map[uuid.UUID][]*journalDomain.Entry {
	adjacency := make(map[uuid.UUID][]*journalDomain.Entry)
	visited := map[uuid.UUID]bool{root.ID: true}
	queue := []uuid.UUID{root.ID}

	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		for _, child := range byParent[parentID] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			adjacency[parentID] = append(adjacency[parentID], child)
			queue = append(queue, child.ID)
		}
	}

	for _, children := range adjacency {
		slices.SortStableFunc(children, func(a, b *journalDomain.Entry) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID.String(), b.ID.String())
		})
	}

	return adjacency
}
