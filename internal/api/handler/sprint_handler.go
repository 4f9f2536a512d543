package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/linear"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// SprintHandler serves sprint CRUD plus the Linear actuals sync.
type SprintHandler struct {
	sprintSvc service.SprintService
	syncSvc   service.SyncService
}

// NewSprintHandler creates a SprintHandler.
func NewSprintHandler(sprintSvc service.SprintService, syncSvc service.SyncService) *SprintHandler {
	return &SprintHandler{sprintSvc: sprintSvc, syncSvc: syncSvc}
}

// ListSprints handles GET /api/v1/sprints?quarter_id=....
func (h *SprintHandler) ListSprints(c *gin.Context) {
	quarterID := c.Query("quarter_id")
	if quarterID == "" {
		response.BadRequest(c, "quarter_id is required")
		return
	}

	sprints, err := h.sprintSvc.ListByQuarter(c.Request.Context(), quarterID)
	if err != nil {
		h.handleSprintError(c, err)
		return
	}
	response.OK(c, sprints)
}

// GetSprint handles GET /api/v1/sprints/:id.
func (h *SprintHandler) GetSprint(c *gin.Context) {
	sprint, err := h.sprintSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSprintError(c, err)
		return
	}
	response.OK(c, sprint)
}

// CreateSprint handles POST /api/v1/sprints.
func (h *SprintHandler) CreateSprint(c *gin.Context) {
	var req dto.CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid sprint payload: "+err.Error())
		return
	}

	sprint, err := h.sprintSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSprintError(c, err)
		return
	}
	response.Created(c, sprint)
}

// UpdateSprint handles PUT /api/v1/sprints/:id.
func (h *SprintHandler) UpdateSprint(c *gin.Context) {
	var req dto.UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid sprint payload: "+err.Error())
		return
	}

	sprint, err := h.sprintSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSprintError(c, err)
		return
	}
	response.OK(c, sprint)
}

// DeleteSprint handles DELETE /api/v1/sprints/:id.
func (h *SprintHandler) DeleteSprint(c *gin.Context) {
	if err := h.sprintSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleSprintError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// SyncActuals handles POST /api/v1/sprints/:id/sync-actuals. Upstream Linear
// failures surface with the upstream message so callers can diagnose them.
func (h *SprintHandler) SyncActuals(c *gin.Context) {
	var req dto.SyncActualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid sync payload: "+err.Error())
		return
	}

	result, err := h.syncSvc.SyncActuals(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *SprintHandler) handleSprintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSprintNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSprintDateInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}

func (h *SprintHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSprintNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrTeamNotLinked):
		response.BadRequest(c, err.Error())
	case errors.Is(err, linear.ErrNotConfigured):
		response.ErrorWithDetails(c, http.StatusInternalServerError, "linear is not configured", err.Error())
	default:
		response.ErrorWithDetails(c, http.StatusInternalServerError, "sync with linear failed", err.Error())
	}
}
