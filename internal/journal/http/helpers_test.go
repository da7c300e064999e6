package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(raw)
	}

	c.Request = httptest.NewRequest(method, path, bodyReader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

type mockEntryUseCase struct {
	mock.Mock
}

func (m *mockEntryUseCase) Create(
	ctx context.Context,
	content, prompt string,
	parentID *uuid.UUID,
) (*journalDomain.Entry, error) {
	args := m.Called(ctx, content, prompt, parentID)
	entry, _ := args.Get(0).(*journalDomain.Entry)
	return entry, args.Error(1)
}

func (m *mockEntryUseCase) GetThread(
	ctx context.Context,
	id uuid.UUID,
	policy journalDomain.DecryptPolicy,
) (*journalDomain.ThreadNode, error) {
	args := m.Called(ctx, id, policy)
	node, _ := args.Get(0).(*journalDomain.ThreadNode)
	return node, args.Error(1)
}

func (m *mockEntryUseCase) ListHistory(ctx context.Context, offset, limit int) ([]*journalDomain.ThreadNode, error) {
	args := m.Called(ctx, offset, limit)
	nodes, _ := args.Get(0).([]*journalDomain.ThreadNode)
	return nodes, args.Error(1)
}

func (m *mockEntryUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockFolderUseCase struct {
	mock.Mock
}

func (m *mockFolderUseCase) Create(
	ctx context.Context,
	name, description string,
) (*journalDomain.DecryptedFolder, error) {
	args := m.Called(ctx, name, description)
	folder, _ := args.Get(0).(*journalDomain.DecryptedFolder)
	return folder, args.Error(1)
}

func (m *mockFolderUseCase) Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedFolder, error) {
	args := m.Called(ctx, id)
	folder, _ := args.Get(0).(*journalDomain.DecryptedFolder)
	return folder, args.Error(1)
}

func (m *mockFolderUseCase) List(ctx context.Context) ([]*journalDomain.DecryptedFolder, error) {
	args := m.Called(ctx)
	folders, _ := args.Get(0).([]*journalDomain.DecryptedFolder)
	return folders, args.Error(1)
}

type mockGoalUseCase struct {
	mock.Mock
}

func (m *mockGoalUseCase) Create(
	ctx context.Context,
	title, description string,
) (*journalDomain.DecryptedGoal, error) {
	args := m.Called(ctx, title, description)
	goal, _ := args.Get(0).(*journalDomain.DecryptedGoal)
	return goal, args.Error(1)
}

func (m *mockGoalUseCase) Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedGoal, error) {
	args := m.Called(ctx, id)
	goal, _ := args.Get(0).(*journalDomain.DecryptedGoal)
	return goal, args.Error(1)
}

func (m *mockGoalUseCase) List(ctx context.Context) ([]*journalDomain.DecryptedGoal, error) {
	args := m.Called(ctx)
	goals, _ := args.Get(0).([]*journalDomain.DecryptedGoal)
	return goals, args.Error(1)
}
