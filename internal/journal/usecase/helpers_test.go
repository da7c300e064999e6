package usecase

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	cryptoService "github.com/allisson/journal/internal/crypto/service"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	session  *sessionUseCase.Session
	envelope *cryptoService.EnvelopeService
	cipher   recordCipher
	base     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	envelope := cryptoService.NewEnvelopeService(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
	session := sessionUseCase.NewSession(
		cryptoService.NewKeyDerivationService(1000),
		envelope,
		sessionUseCase.Config{},
		discardLogger(),
	)
	t.Cleanup(session.Close)
	require.NoError(t, session.Unlock(context.Background(), "a@example.com", "pw1"))

	return &fixture{
		session:  session,
		envelope: envelope,
		cipher:   recordCipher{keys: session, envelope: envelope},
		base:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

// entry builds an encrypted entry created offset minutes after the fixture base time.
func (f *fixture) entry(t *testing.T, parent *journalDomain.Entry, content string, offset int) *journalDomain.Entry {
	t.Helper()

	wrapped, blobs, err := f.cipher.seal(context.Background(), content, "prompt for "+content)
	require.NoError(t, err)

	entry := &journalDomain.Entry{
		ID:        uuid.Must(uuid.NewV7()),
		Content:   blobs[0],
		Prompt:    blobs[1],
		DataKey:   wrapped,
		CreatedAt: f.base.Add(time.Duration(offset) * time.Minute),
	}
	if parent != nil {
		parentID := parent.ID
		entry.ParentID = &parentID
	}
	return entry
}

// corrupt replaces the content IV so the entry no longer decrypts.
func corrupt(entry *journalDomain.Entry) {
	entry.Content.IV = base64.StdEncoding.EncodeToString(make([]byte, 12))
}

type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingTxManager struct {
	calls int
}

func (m *countingTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type memoryEntryRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*journalDomain.Entry
}

func newMemoryEntryRepository(entries ...*journalDomain.Entry) *memoryEntryRepository {
	repo := &memoryEntryRepository{entries: map[uuid.UUID]*journalDomain.Entry{}}
	for _, entry := range entries {
		repo.entries[entry.ID] = entry
	}
	return repo
}

func (m *memoryEntryRepository) Create(_ context.Context, entry *journalDomain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *memoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*journalDomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok || entry.DeletedAt != nil {
		return nil, journalDomain.ErrEntryNotFound
	}
	return entry, nil
}

func (m *memoryEntryRepository) ListChildren(
	_ context.Context,
	parentIDs []uuid.UUID,
) ([]*journalDomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var children []*journalDomain.Entry
	for _, entry := range m.entries {
		if entry.ParentID != nil && entry.DeletedAt == nil && slices.Contains(parentIDs, *entry.ParentID) {
			children = append(children, entry)
		}
	}
	return children, nil
}

func (m *memoryEntryRepository) ListRoots(_ context.Context, offset, limit int) ([]*journalDomain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var roots []*journalDomain.Entry
	for _, entry := range m.entries {
		if entry.ParentID == nil && entry.DeletedAt == nil {
			roots = append(roots, entry)
		}
	}
	slices.SortFunc(roots, func(a, b *journalDomain.Entry) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if offset >= len(roots) {
		return nil, nil
	}
	return roots[offset:min(offset+limit, len(roots))], nil
}

func (m *memoryEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok || entry.DeletedAt != nil {
		return journalDomain.ErrEntryNotFound
	}
	now := time.Now().UTC()
	entry.DeletedAt = &now
	return nil
}
