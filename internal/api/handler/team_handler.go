package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// TeamHandler serves the team CRUD endpoints.
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// ListTeams handles GET /api/v1/teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, teams)
}

// GetTeam handles GET /api/v1/teams/:id.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	team, err := h.teamSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, team)
}

// CreateTeam handles POST /api/v1/teams.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid team payload: "+err.Error())
		return
	}

	team, err := h.teamSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.Created(c, team)
}

// UpdateTeam handles PUT /api/v1/teams/:id.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid team payload: "+err.Error())
		return
	}

	team, err := h.teamSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, team)
}

// DeleteTeam handles DELETE /api/v1/teams/:id.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTeamError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *TeamHandler) handleTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c)
	}
}
