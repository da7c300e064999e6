// Package http provides HTTP handlers and middleware for the journal session.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/journal/internal/httputil"
	"github.com/allisson/journal/internal/session/http/dto"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
	customValidation "github.com/allisson/journal/internal/validation"
)

// SessionHandler exposes the lock state machine over HTTP.
type SessionHandler struct {
	sessionUseCase sessionUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionUseCase sessionUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// UnlockHandler derives the master key from the submitted credentials.
// POST /v1/session/unlock - Returns 200 OK with the session state, 401 on
// rejected credentials and 409 while another unlock is running.
func (h *SessionHandler) UnlockHandler(c *gin.Context) {
	var req dto.UnlockRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.sessionUseCase.Unlock(c.Request.Context(), req.Email, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusToResponse(h.sessionUseCase.State()))
}

// LockHandler drops the master key.
// POST /v1/session/lock
func (h *SessionHandler) LockHandler(c *gin.Context) {
	h.sessionUseCase.Lock()
	c.JSON(http.StatusOK, dto.MapStatusToResponse(h.sessionUseCase.State()))
}

// EndHandler ends the session from any state, aborting a running unlock.
// POST /v1/session/end
func (h *SessionHandler) EndHandler(c *gin.Context) {
	h.sessionUseCase.EndSession()
	c.JSON(http.StatusOK, dto.MapStatusToResponse(h.sessionUseCase.State()))
}

// ActivityHandler refreshes the idle timer without touching journal content.
// POST /v1/session/activity
func (h *SessionHandler) ActivityHandler(c *gin.Context) {
	h.sessionUseCase.RecordActivity()
	c.JSON(http.StatusOK, dto.MapStatusToResponse(h.sessionUseCase.State()))
}

// GetHandler returns the session state.
// GET /v1/session
func (h *SessionHandler) GetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapStatusToResponse(h.sessionUseCase.State()))
}

// AutoLockHandler changes the idle auto-lock setting.
// PUT /v1/session/auto-lock
func (h *SessionHandler) AutoLockHandler(c *gin.Context) {
	var req dto.AutoLockRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.sessionUseCase.SetAutoLock(req.Enabled, req.TimeoutMinutes); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusToResponse(h.sessionUseCase.State()))
}
