// Package http provides HTTP handlers for journal entries, folders and goals.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/journal/internal/errors"
	"github.com/allisson/journal/internal/httputil"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
	"github.com/allisson/journal/internal/journal/http/dto"
	journalUseCase "github.com/allisson/journal/internal/journal/usecase"
	customValidation "github.com/allisson/journal/internal/validation"
)

// EntryHandler handles HTTP requests for journal entries.
type EntryHandler struct {
	entryUseCase journalUseCase.EntryUseCase
	logger       *slog.Logger
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(entryUseCase journalUseCase.EntryUseCase, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		entryUseCase: entryUseCase,
		logger:       logger,
	}
}

// CreateHandler encrypts and stores a new entry.
// POST /v1/entries - Returns 201 Created with entry metadata.
func (h *EntryHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateEntryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	entry, err := h.entryUseCase.Create(c.Request.Context(), req.Content, req.Prompt, req.Parent())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEntryToResponse(entry))
}

// GetThreadHandler decrypts an entry and all of its follow-ups.
// GET /v1/entries/:id/thread?policy=skip|report - Returns 200 OK with the thread tree.
func (h *EntryHandler) GetThreadHandler(c *gin.Context) {
	entryID, ok := h.parseID(c)
	if !ok {
		return
	}

	rawPolicy := c.Query("policy")
	if err := validation.Validate(rawPolicy, customValidation.DecryptPolicy); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	policy, _ := journalDomain.ParseDecryptPolicy(rawPolicy)

	thread, err := h.entryUseCase.GetThread(c.Request.Context(), entryID, policy)
	if err == nil && thread == nil {
		err = journalDomain.ErrThreadRootUnreadable
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapThreadToResponse(thread))
}

// ListHandler returns a page of decrypted threads, newest first.
// GET /v1/entries?offset=0&limit=20 - Returns 200 OK.
func (h *EntryHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	threads, err := h.entryUseCase.ListHistory(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapThreadsToListResponse(threads))
}

// DeleteHandler soft deletes an entry and its follow-ups.
// DELETE /v1/entries/:id - Returns 204 No Content.
func (h *EntryHandler) DeleteHandler(c *gin.Context) {
	entryID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.entryUseCase.Delete(c.Request.Context(), entryID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *EntryHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	return parseUUIDParam(c, "entry", h.logger)
}

// parseUUIDParam writes a validation error and returns false when :id is not a UUID.
func parseUUIDParam(c *gin.Context, resource string, logger *slog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid "+resource+" ID format: must be a valid UUID"),
			logger,
		)
		return uuid.Nil, false
	}
	return id, true
}
