package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// PTOHandler serves planned time off entries.
type PTOHandler struct {
	ptoSvc service.PTOService
}

// NewPTOHandler creates a PTOHandler.
func NewPTOHandler(ptoSvc service.PTOService) *PTOHandler {
	return &PTOHandler{ptoSvc: ptoSvc}
}

// ListPTO handles GET /api/v1/pto?team_id=...&quarter_id=....
func (h *PTOHandler) ListPTO(c *gin.Context) {
	teamID := c.Query("team_id")
	quarterID := c.Query("quarter_id")
	if teamID == "" || quarterID == "" {
		response.BadRequest(c, "team_id and quarter_id are required")
		return
	}

	entries, err := h.ptoSvc.ListByTeamAndQuarter(c.Request.Context(), teamID, quarterID)
	if err != nil {
		h.handlePTOError(c, err)
		return
	}
	response.OK(c, entries)
}

// CreatePTO handles POST /api/v1/pto.
func (h *PTOHandler) CreatePTO(c *gin.Context) {
	var req dto.CreatePTORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid pto payload: "+err.Error())
		return
	}

	entry, err := h.ptoSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePTOError(c, err)
		return
	}
	response.Created(c, entry)
}

// DeletePTO handles DELETE /api/v1/pto/:id.
func (h *PTOHandler) DeletePTO(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "pto id must be numeric")
		return
	}

	if err := h.ptoSvc.Delete(c.Request.Context(), id); err != nil {
		h.handlePTOError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *PTOHandler) handlePTOError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPTONotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPTODateInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
