package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// AllocationHandler serves the per-sprint allocation grid.
type AllocationHandler struct {
	allocationSvc service.AllocationService
}

// NewAllocationHandler creates an AllocationHandler.
func NewAllocationHandler(allocationSvc service.AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationSvc: allocationSvc}
}

// ListAllocations handles GET /api/v1/allocations?project_id=... or
// ?sprint_id=.... Exactly one of the two filters is required.
func (h *AllocationHandler) ListAllocations(c *gin.Context) {
	projectID := c.Query("project_id")
	sprintID := c.Query("sprint_id")

	switch {
	case projectID != "" && sprintID != "":
		response.BadRequest(c, "pass either project_id or sprint_id, not both")
	case projectID != "":
		allocations, err := h.allocationSvc.ListByProject(c.Request.Context(), projectID)
		if err != nil {
			h.handleAllocationError(c, err)
			return
		}
		response.OK(c, allocations)
	case sprintID != "":
		allocations, err := h.allocationSvc.ListBySprint(c.Request.Context(), sprintID)
		if err != nil {
			h.handleAllocationError(c, err)
			return
		}
		response.OK(c, allocations)
	default:
		response.BadRequest(c, "project_id or sprint_id is required")
	}
}

// UpsertAllocation handles POST /api/v1/allocations.
func (h *AllocationHandler) UpsertAllocation(c *gin.Context) {
	var req dto.UpsertAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid allocation payload: "+err.Error())
		return
	}

	allocation, err := h.allocationSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		h.handleAllocationError(c, err)
		return
	}
	response.OK(c, allocation)
}

// RecalculateAllocation handles POST /api/v1/allocations/recalculate.
func (h *AllocationHandler) RecalculateAllocation(c *gin.Context) {
	var req dto.RecalculateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid recalculate payload: "+err.Error())
		return
	}

	allocation, err := h.allocationSvc.Recalculate(c.Request.Context(), &req)
	if err != nil {
		h.handleAllocationError(c, err)
		return
	}
	response.OK(c, allocation)
}

// MoveAllocation handles POST /api/v1/allocations/move.
func (h *AllocationHandler) MoveAllocation(c *gin.Context) {
	var req dto.MoveAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid move payload: "+err.Error())
		return
	}

	allocation, err := h.allocationSvc.Move(c.Request.Context(), &req)
	if err != nil {
		h.handleAllocationError(c, err)
		return
	}
	response.OK(c, allocation)
}

// DeleteAllocation handles DELETE /api/v1/allocations?project_id=...&sprint_id=....
func (h *AllocationHandler) DeleteAllocation(c *gin.Context) {
	projectID := c.Query("project_id")
	sprintID := c.Query("sprint_id")
	if projectID == "" || sprintID == "" {
		response.BadRequest(c, "project_id and sprint_id are required")
		return
	}

	if err := h.allocationSvc.Delete(c.Request.Context(), projectID, sprintID); err != nil {
		h.handleAllocationError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *AllocationHandler) handleAllocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAllocationNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrSprintNotFound),
		errors.Is(err, service.ErrQuarterNotFound),
		errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPhaseInvalid),
		errors.Is(err, service.ErrSameSprint):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
