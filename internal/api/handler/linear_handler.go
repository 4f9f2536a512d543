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

// LinearHandler proxies Linear reads and the project writebacks.
type LinearHandler struct {
	linearSvc service.LinearService
}

// NewLinearHandler creates a LinearHandler.
func NewLinearHandler(linearSvc service.LinearService) *LinearHandler {
	return &LinearHandler{linearSvc: linearSvc}
}

// ListTeams handles GET /api/v1/linear/teams.
func (h *LinearHandler) ListTeams(c *gin.Context) {
	teams, err := h.linearSvc.Teams(c.Request.Context())
	if err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, teams)
}

// ListProjects handles GET /api/v1/linear/projects?team_id=....
func (h *LinearHandler) ListProjects(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		response.BadRequest(c, "team_id is required")
		return
	}

	projects, err := h.linearSvc.TeamProjects(c.Request.Context(), teamID)
	if err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, projects)
}

// ListCycles handles GET /api/v1/linear/cycles?team_id=....
func (h *LinearHandler) ListCycles(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		response.BadRequest(c, "team_id is required")
		return
	}

	cycles, err := h.linearSvc.TeamCycles(c.Request.Context(), teamID)
	if err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, cycles)
}

// BulkProjects handles POST /api/v1/linear/projects/bulk: a fresh fetch of
// many projects at once, keyed by project ID.
func (h *LinearHandler) BulkProjects(c *gin.Context) {
	var req dto.BulkProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "project_ids array is required")
		return
	}

	projects, err := h.linearSvc.ProjectsBulk(c.Request.Context(), &req)
	if err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, projects)
}

// GetIssue handles GET /api/v1/linear/issues/:id.
func (h *LinearHandler) GetIssue(c *gin.Context) {
	issue, err := h.linearSvc.Issue(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, issue)
}

// UpdateProjectDates handles POST /api/v1/linear/update-dates.
func (h *LinearHandler) UpdateProjectDates(c *gin.Context) {
	var req dto.UpdateProjectDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	if err := h.linearSvc.UpdateProjectDates(c.Request.Context(), &req); err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

// UpdateProjectField handles POST /api/v1/linear/update-field.
func (h *LinearHandler) UpdateProjectField(c *gin.Context) {
	var req dto.UpdateProjectFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	if err := h.linearSvc.UpdateProjectField(c.Request.Context(), &req); err != nil {
		h.handleLinearError(c, err)
		return
	}
	response.OK(c, gin.H{"updated": true})
}

func (h *LinearHandler) handleLinearError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, linear.ErrNotConfigured):
		response.ErrorWithDetails(c, http.StatusInternalServerError, "linear is not configured", err.Error())
	case errors.Is(err, service.ErrLinearFieldInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.ErrorWithDetails(c, http.StatusInternalServerError, "linear request failed", err.Error())
	}
}
