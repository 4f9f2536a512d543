package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// CapacityHandler serves the reconciliation views.
type CapacityHandler struct {
	capacitySvc service.CapacityService
}

// NewCapacityHandler creates a CapacityHandler.
func NewCapacityHandler(capacitySvc service.CapacityService) *CapacityHandler {
	return &CapacityHandler{capacitySvc: capacitySvc}
}

// QuarterCapacity handles GET /api/v1/capacity/quarter?team_id=...&quarter_id=....
func (h *CapacityHandler) QuarterCapacity(c *gin.Context) {
	teamID := c.Query("team_id")
	quarterID := c.Query("quarter_id")
	if teamID == "" || quarterID == "" {
		response.BadRequest(c, "team_id and quarter_id are required")
		return
	}

	view, err := h.capacitySvc.QuarterCapacity(c.Request.Context(), teamID, quarterID)
	if err != nil {
		h.handleCapacityError(c, err)
		return
	}
	response.OK(c, view)
}

// SprintCapacities handles GET /api/v1/capacity/sprints?team_id=...&quarter_id=....
func (h *CapacityHandler) SprintCapacities(c *gin.Context) {
	teamID := c.Query("team_id")
	quarterID := c.Query("quarter_id")
	if teamID == "" || quarterID == "" {
		response.BadRequest(c, "team_id and quarter_id are required")
		return
	}

	views, err := h.capacitySvc.SprintCapacities(c.Request.Context(), teamID, quarterID)
	if err != nil {
		h.handleCapacityError(c, err)
		return
	}
	response.OK(c, views)
}

func (h *CapacityHandler) handleCapacityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c)
	}
}
