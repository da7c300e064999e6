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

// GoalHandler handles HTTP requests for goals.
type GoalHandler struct {
	goalUseCase journalUseCase.GoalUseCase
	logger      *slog.Logger
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goalUseCase journalUseCase.GoalUseCase, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{
		goalUseCase: goalUseCase,
		logger:      logger,
	}
}

// CreateHandler creates an encrypted goal.
// POST /v1/goals - Returns 201 Created.
func (h *GoalHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateGoalRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	goal, err := h.goalUseCase.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGoalToResponse(goal))
}

// GetHandler returns one decrypted goal.
// GET /v1/goals/:id
func (h *GoalHandler) GetHandler(c *gin.Context) {
	goalID, ok := parseUUIDParam(c, "goal", h.logger)
	if !ok {
		return
	}

	goal, err := h.goalUseCase.Get(c.Request.Context(), goalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGoalToResponse(goal))
}

// ListHandler returns every goal that could be decrypted.
// GET /v1/goals
func (h *GoalHandler) ListHandler(c *gin.Context) {
	goals, err := h.goalUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGoalsToListResponse(goals))
}
