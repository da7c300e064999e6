package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/journal/internal/httputil"
	"github.com/allisson/journal/internal/journal/http/dto"
	journalUseCase "github.com/allisson/journal/internal/journal/usecase"
	customValidation "github.com/allisson/journal/internal/validation"
)

// FolderHandler handles HTTP requests for folders.
type FolderHandler struct {
	folderUseCase journalUseCase.FolderUseCase
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folderUseCase journalUseCase.FolderUseCase, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderUseCase: folderUseCase,
		logger:        logger,
	}
}

// CreateHandler creates an encrypted folder.
// POST /v1/folders - Returns 201 Created.
func (h *FolderHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateFolderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	folder, err := h.folderUseCase.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapFolderToResponse(folder))
}

// GetHandler returns one decrypted folder.
// GET /v1/folders/:id
func (h *FolderHandler) GetHandler(c *gin.Context) {
	folderID, ok := parseUUIDParam(c, "folder", h.logger)
	if !ok {
		return
	}

	folder, err := h.folderUseCase.Get(c.Request.Context(), folderID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFolderToResponse(folder))
}

// ListHandler returns every folder that could be decrypted.
// GET /v1/folders
func (h *FolderHandler) ListHandler(c *gin.Context) {
	folders, err := h.folderUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFoldersToListResponse(folders))
}
