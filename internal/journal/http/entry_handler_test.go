package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
	"github.com/allisson/journal/internal/journal/http/dto"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
)

func setupEntryHandler(t *testing.T) (*EntryHandler, *mockEntryUseCase) {
	t.Helper()
	useCase := &mockEntryUseCase{}
	t.Cleanup(func() { useCase.AssertExpectations(t) })
	return NewEntryHandler(useCase, discardLogger()), useCase
}

func TestEntryHandler_CreateHandler(t *testing.T) {
	t.Run("Success_FollowUp", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		parent := uuid.Must(uuid.NewV7())
		entry := &journalDomain.Entry{ID: uuid.Must(uuid.NewV7()), ParentID: &parent, CreatedAt: time.Now().UTC()}

		useCase.On("Create", mock.Anything, "went for a run", "", &parent).Return(entry, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/entries", dto.CreateEntryRequest{
			Content:  "went for a run",
			ParentID: parent.String(),
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.EntryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, entry.ID.String(), response.ID)
		assert.Equal(t, parent.String(), *response.ParentID)
		assert.NotContains(t, w.Body.String(), "went for a run")
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupEntryHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/entries", `{"content":`)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_BlankContent", func(t *testing.T) {
		handler, _ := setupEntryHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/entries", dto.CreateEntryRequest{Content: "   "})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_SessionLocked", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)

		useCase.On("Create", mock.Anything, "hello", "", (*uuid.UUID)(nil)).
			Return(nil, sessionDomain.ErrSessionLocked).Once()

		c, w := createTestContext(http.MethodPost, "/v1/entries", dto.CreateEntryRequest{Content: "hello"})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusLocked, w.Code)
	})

	t.Run("Error_ParentNotFound", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		parent := uuid.Must(uuid.NewV7())

		useCase.On("Create", mock.Anything, "hello", "", &parent).
			Return(nil, journalDomain.ErrEntryNotFound).Once()

		c, w := createTestContext(http.MethodPost, "/v1/entries", dto.CreateEntryRequest{
			Content:  "hello",
			ParentID: parent.String(),
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEntryHandler_GetThreadHandler(t *testing.T) {
	rootID := uuid.Must(uuid.NewV7())
	childID := uuid.Must(uuid.NewV7())
	thread := &journalDomain.ThreadNode{
		ID:      rootID,
		Content: "root",
		Children: []*journalDomain.ThreadNode{
			{ID: childID, ParentID: &rootID, DecryptionFailed: true},
		},
	}

	tests := []struct {
		name           string
		query          string
		expectedPolicy journalDomain.DecryptPolicy
	}{
		{name: "default policy", query: "", expectedPolicy: journalDomain.PolicyReport},
		{name: "skip policy", query: "?policy=skip", expectedPolicy: journalDomain.PolicySkip},
		{name: "report policy", query: "?policy=report", expectedPolicy: journalDomain.PolicyReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, useCase := setupEntryHandler(t)
			useCase.On("GetThread", mock.Anything, rootID, tt.expectedPolicy).Return(thread, nil).Once()

			c, w := createTestContext(http.MethodGet, fmt.Sprintf("/v1/entries/%s/thread%s", rootID, tt.query), nil)
			c.Params = gin.Params{{Key: "id", Value: rootID.String()}}
			handler.GetThreadHandler(c)

			assert.Equal(t, http.StatusOK, w.Code)
			var response dto.ThreadNodeResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "root", response.Content)
			require.Len(t, response.Children, 1)
			assert.True(t, response.Children[0].DecryptionFailed)
			assert.Equal(t, dto.DecryptionFailedMessage, response.Children[0].Error)
		})
	}

	t.Run("Error_InvalidPolicy", func(t *testing.T) {
		handler, _ := setupEntryHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/entries/x/thread?policy=ignore", nil)
		c.Params = gin.Params{{Key: "id", Value: rootID.String()}}
		handler.GetThreadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupEntryHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/entries/abc/thread", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.GetThreadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnreadableRootSkipped", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		useCase.On("GetThread", mock.Anything, rootID, journalDomain.PolicySkip).
			Return(nil, journalDomain.ErrThreadRootUnreadable).Once()

		c, w := createTestContext(http.MethodGet, "/v1/entries/"+rootID.String()+"/thread?policy=skip", nil)
		c.Params = gin.Params{{Key: "id", Value: rootID.String()}}
		handler.GetThreadHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "thread root could not be decrypted")
	})

	t.Run("Error_EmptyTree", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		useCase.On("GetThread", mock.Anything, rootID, journalDomain.PolicySkip).Return(nil, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/entries/"+rootID.String()+"/thread?policy=skip", nil)
		c.Params = gin.Params{{Key: "id", Value: rootID.String()}}
		assert.NotPanics(t, func() { handler.GetThreadHandler(c) })

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Locked", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		useCase.On("GetThread", mock.Anything, rootID, journalDomain.PolicyReport).
			Return(nil, sessionDomain.ErrSessionLocked).Once()

		c, w := createTestContext(http.MethodGet, "/v1/entries/"+rootID.String()+"/thread", nil)
		c.Params = gin.Params{{Key: "id", Value: rootID.String()}}
		handler.GetThreadHandler(c)

		assert.Equal(t, http.StatusLocked, w.Code)
		assert.NotContains(t, w.Body.String(), "root")
	})
}

func TestEntryHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		threads := []*journalDomain.ThreadNode{
			{ID: uuid.Must(uuid.NewV7()), Content: "newest"},
			{ID: uuid.Must(uuid.NewV7()), Content: "older"},
		}
		useCase.On("ListHistory", mock.Anything, 10, 5).Return(threads, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/entries?offset=10&limit=5", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListHistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 2)
		assert.Equal(t, "newest", response.Data[0].Content)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupEntryHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/entries?limit=0", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestEntryHandler_DeleteHandler(t *testing.T) {
	entryID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		useCase.On("Delete", mock.Anything, entryID).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/entries/"+entryID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: entryID.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, useCase := setupEntryHandler(t)
		useCase.On("Delete", mock.Anything, entryID).Return(journalDomain.ErrEntryNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/entries/"+entryID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: entryID.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
