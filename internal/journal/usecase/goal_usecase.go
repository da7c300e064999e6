package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/allisson/journal/internal/crypto/service"
	apperrors "github.com/allisson/journal/internal/errors"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

// goalUseCase implements GoalUseCase.
type goalUseCase struct {
	goalRepo GoalRepository
	keys     sessionUseCase.KeyGuard
	cipher   recordCipher
	logger   *slog.Logger
}

// NewGoalUseCase creates a new GoalUseCase.
func NewGoalUseCase(
	goalRepo GoalRepository,
	keys sessionUseCase.KeyGuard,
	envelope cryptoService.EnvelopeCrypto,
	logger *slog.Logger,
) GoalUseCase {
	return &goalUseCase{
		goalRepo: goalRepo,
		keys:     keys,
		cipher:   recordCipher{keys: keys, envelope: envelope},
		logger:   logger,
	}
}

func (g *goalUseCase) Create(
	ctx context.Context,
	title, description string,
) (*journalDomain.DecryptedGoal, error) {
	if err := g.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "goal title cannot be empty")
	}

	wrapped, blobs, err := g.cipher.seal(ctx, title, description)
	if err != nil {
		return nil, err
	}

	goal := &journalDomain.Goal{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       blobs[0],
		Description: blobs[1],
		DataKey:     wrapped,
		CreatedAt:   time.Now().UTC(),
	}

	if err := g.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return &journalDomain.DecryptedGoal{
		ID:          goal.ID,
		Title:       title,
		Description: description,
		CreatedAt:   goal.CreatedAt,
	}, nil
}

func (g *goalUseCase) Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedGoal, error) {
	if err := g.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}

	goal, err := g.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.decrypt(ctx, goal)
}

// List skips goals that fail to decrypt.
func (g *goalUseCase) List(ctx context.Context) ([]*journalDomain.DecryptedGoal, error) {
	if err := g.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}

	goals, err := g.goalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return openEach(ctx, g.logger, "goal", goals, goalID, g.decrypt)
}

func goalID(goal *journalDomain.Goal) uuid.UUID {
	return goal.ID
}

func (g *goalUseCase) decrypt(
	ctx context.Context,
	goal *journalDomain.Goal,
) (*journalDomain.DecryptedGoal, error) {
	fields, err := g.cipher.open(ctx, goal.DataKey, goal.Title, goal.Description)
	if err != nil {
		return nil, err
	}

	return &journalDomain.DecryptedGoal{
		ID:          goal.ID,
		Title:       fields[0],
		Description: fields[1],
		CreatedAt:   goal.CreatedAt,
	}, nil
}
