package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// ProjectHandler serves the planned-project rows of a quarter.
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects handles GET /api/v1/projects?quarter_id=...&team_id=....
// team_id is optional and narrows the list to one team.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	quarterID := c.Query("quarter_id")
	if quarterID == "" {
		response.BadRequest(c, "quarter_id is required")
		return
	}

	projects, err := h.projectSvc.ListByQuarter(c.Request.Context(), quarterID, c.Query("team_id"))
	if err != nil {
		h.handleProjectError(c, err)
		return
	}
	response.OK(c, projects)
}

// GetProject handles GET /api/v1/projects/:id.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProjectError(c, err)
		return
	}
	response.OK(c, project)
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}
	response.Created(c, project)
}

// UpdateProject handles PUT /api/v1/projects/:id.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}
	response.OK(c, project)
}

// DeleteProject handles DELETE /api/v1/projects/:id.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleProjectError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// ReorderProjects handles POST /api/v1/projects/reorder.
func (h *ProjectHandler) ReorderProjects(c *gin.Context) {
	var req dto.ReorderProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid reorder payload: "+err.Error())
		return
	}

	if err := h.projectSvc.Reorder(c.Request.Context(), &req); err != nil {
		h.handleProjectError(c, err)
		return
	}
	response.OK(c, gin.H{"reordered": true})
}

func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrProjectAlreadyInPlan):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
