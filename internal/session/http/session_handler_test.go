package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
	"github.com/allisson/journal/internal/session/http/dto"
)

type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) WrapDataKey(
	ctx context.Context,
	dataKey *cryptoDomain.DataKey,
) (cryptoDomain.WrappedKey, error) {
	args := m.Called(ctx, dataKey)
	return args.Get(0).(cryptoDomain.WrappedKey), args.Error(1)
}

func (m *mockSessionUseCase) UnwrapDataKey(
	ctx context.Context,
	wrapped cryptoDomain.WrappedKey,
) (*cryptoDomain.DataKey, error) {
	args := m.Called(ctx, wrapped)
	dataKey, _ := args.Get(0).(*cryptoDomain.DataKey)
	return dataKey, args.Error(1)
}

func (m *mockSessionUseCase) EnsureUnlocked() error {
	return m.Called().Error(0)
}

func (m *mockSessionUseCase) RecordActivity() {
	m.Called()
}

func (m *mockSessionUseCase) Unlock(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func (m *mockSessionUseCase) Lock() {
	m.Called()
}

func (m *mockSessionUseCase) EndSession() {
	m.Called()
}

func (m *mockSessionUseCase) SetAutoLock(enabled bool, timeoutMinutes int) error {
	return m.Called(enabled, timeoutMinutes).Error(0)
}

func (m *mockSessionUseCase) State() sessionDomain.Status {
	return m.Called().Get(0).(sessionDomain.Status)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupSessionHandler(t *testing.T) (*SessionHandler, *mockSessionUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	useCase := &mockSessionUseCase{}
	t.Cleanup(func() { useCase.AssertExpectations(t) })
	return NewSessionHandler(useCase, discardLogger()), useCase
}

func newContext(method, path string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) dto.SessionResponse {
	t.Helper()
	var response dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestSessionHandler_UnlockHandler(t *testing.T) {
	unlockedAt := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	unlocked := sessionDomain.Status{
		State:           sessionDomain.StateUnlocked,
		AutoLockEnabled: true,
		AutoLockTimeout: 15 * time.Minute,
		UnlockedAt:      &unlockedAt,
	}

	t.Run("Success", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("Unlock", mock.Anything, "writer@example.com", "pw1").Return(nil).Once()
		useCase.On("State").Return(unlocked).Once()

		c, w := newContext(http.MethodPost, "/v1/session/unlock", `{"email":"writer@example.com","password":"pw1"}`)
		handler.UnlockHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeSession(t, w)
		assert.Equal(t, "unlocked", response.State)
		assert.Equal(t, 15, response.AutoLockTimeoutMinutes)
		assert.NotContains(t, w.Body.String(), "pw1")
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("Unlock", mock.Anything, "writer@example.com", "pw2").
			Return(sessionDomain.ErrInvalidCredentials).Once()

		c, w := newContext(http.MethodPost, "/v1/session/unlock", `{"email":"writer@example.com","password":"pw2"}`)
		handler.UnlockHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_UnlockInProgress", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("Unlock", mock.Anything, "writer@example.com", "pw1").
			Return(sessionDomain.ErrUnlockInProgress).Once()

		c, w := newContext(http.MethodPost, "/v1/session/unlock", `{"email":"writer@example.com","password":"pw1"}`)
		handler.UnlockHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)

		c, w := newContext(http.MethodPost, "/v1/session/unlock", `{"email":"writer@example.com"}`)
		handler.UnlockHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)

		c, w := newContext(http.MethodPost, "/v1/session/unlock", `{"email":`)
		handler.UnlockHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_StateTransitions(t *testing.T) {
	locked := sessionDomain.Status{State: sessionDomain.StateLocked}

	t.Run("Lock", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("Lock").Return().Once()
		useCase.On("State").Return(locked).Once()

		c, w := newContext(http.MethodPost, "/v1/session/lock", "")
		handler.LockHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "locked", decodeSession(t, w).State)
	})

	t.Run("End", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("EndSession").Return().Once()
		useCase.On("State").Return(locked).Once()

		c, w := newContext(http.MethodPost, "/v1/session/end", "")
		handler.EndHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Activity", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("RecordActivity").Return().Once()
		useCase.On("State").Return(locked).Once()

		c, w := newContext(http.MethodPost, "/v1/session/activity", "")
		handler.ActivityHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Get", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("State").Return(locked).Once()

		c, w := newContext(http.MethodGet, "/v1/session", "")
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "locked", decodeSession(t, w).State)
	})
}

func TestSessionHandler_AutoLockHandler(t *testing.T) {
	t.Run("Success_Disable", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("SetAutoLock", false, 0).Return(nil).Once()
		useCase.On("State").Return(sessionDomain.Status{State: sessionDomain.StateUnlocked}).Once()

		c, w := newContext(http.MethodPut, "/v1/session/auto-lock", `{"enabled":false}`)
		handler.AutoLockHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decodeSession(t, w).AutoLockEnabled)
	})

	t.Run("Success_Enable", func(t *testing.T) {
		handler, useCase := setupSessionHandler(t)
		useCase.On("SetAutoLock", true, 5).Return(nil).Once()
		useCase.On("State").Return(sessionDomain.Status{
			State:           sessionDomain.StateUnlocked,
			AutoLockEnabled: true,
			AutoLockTimeout: 5 * time.Minute,
		}).Once()

		c, w := newContext(http.MethodPut, "/v1/session/auto-lock", `{"enabled":true,"timeout_minutes":5}`)
		handler.AutoLockHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, decodeSession(t, w).AutoLockTimeoutMinutes)
	})

	t.Run("Error_MissingTimeout", func(t *testing.T) {
		handler, _ := setupSessionHandler(t)

		c, w := newContext(http.MethodPut, "/v1/session/auto-lock", `{"enabled":true}`)
		handler.AutoLockHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
