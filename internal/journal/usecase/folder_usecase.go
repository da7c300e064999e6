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

// folderUseCase implements FolderUseCase.
type folderUseCase struct {
	folderRepo FolderRepository
	keys       sessionUseCase.KeyGuard
	cipher     recordCipher
	logger     *slog.Logger
}

// NewFolderUseCase creates a new FolderUseCase.
func NewFolderUseCase(
	folderRepo FolderRepository,
	keys sessionUseCase.KeyGuard,
	envelope cryptoService.EnvelopeCrypto,
	logger *slog.Logger,
) FolderUseCase {
	return &folderUseCase{
		folderRepo: folderRepo,
		keys:       keys,
		cipher:     recordCipher{keys: keys, envelope: envelope},
		logger:     logger,
	}
}

func (f *folderUseCase) Create(
	ctx context.Context,
	name, description string,
) (*journalDomain.DecryptedFolder, error) {
	if err := f.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "folder name cannot be empty")
	}

	wrapped, blobs, err := f.cipher.seal(ctx, name, description)
	if err != nil {
		return nil, err
	}

	folder := &journalDomain.Folder{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        blobs[0],
		Description: blobs[1],
		DataKey:     wrapped,
		CreatedAt:   time.Now().UTC(),
	}

	if err := f.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	return &journalDomain.DecryptedFolder{
		ID:          folder.ID,
		Name:        name,
		Description: description,
		CreatedAt:   folder.CreatedAt,
	}, nil
}

func (f *folderUseCase) Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedFolder, error) {
	if err := f.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}

	folder, err := f.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.decrypt(ctx, folder)
}

// List skips folders that fail to decrypt.
func (f *folderUseCase) List(ctx context.Context) ([]*journalDomain.DecryptedFolder, error) {
	if err := f.keys.EnsureUnlocked(); err != nil {
		return nil, err
	}

	folders, err := f.folderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return openEach(ctx, f.logger, "folder", folders, folderID, f.decrypt)
}

func folderID(folder *journalDomain.Folder) uuid.UUID {
	return folder.ID
}

func (f *folderUseCase) decrypt(
	ctx context.Context,
	folder *journalDomain.Folder,
) (*journalDomain.DecryptedFolder, error) {
	fields, err := f.cipher.open(ctx, folder.DataKey, folder.Name, folder.Description)
	if err != nil {
		return nil, err
	}

	return &journalDomain.DecryptedFolder{
		ID:          folder.ID,
		Name:        fields[0],
		Description: fields[1],
		CreatedAt:   folder.CreatedAt,
	}, nil
}
