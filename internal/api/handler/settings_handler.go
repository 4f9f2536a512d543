package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// SettingsHandler serves per-quarter team planning overrides.
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// GetSettings handles GET /api/v1/settings?team_id=...&quarter_id=....
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	teamID := c.Query("team_id")
	quarterID := c.Query("quarter_id")
	if teamID == "" || quarterID == "" {
		response.BadRequest(c, "team_id and quarter_id are required")
		return
	}

	settings, err := h.settingsSvc.GetByTeamAndQuarter(c.Request.Context(), teamID, quarterID)
	if err != nil {
		h.handleSettingsError(c, err)
		return
	}
	response.OK(c, settings)
}

// UpsertSettings handles PUT /api/v1/settings.
func (h *SettingsHandler) UpsertSettings(c *gin.Context) {
	var req dto.UpsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid settings payload: "+err.Error())
		return
	}

	settings, err := h.settingsSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		h.handleSettingsError(c, err)
		return
	}
	response.OK(c, settings)
}

// DeleteSettings handles DELETE /api/v1/settings?team_id=...&quarter_id=....
func (h *SettingsHandler) DeleteSettings(c *gin.Context) {
	teamID := c.Query("team_id")
	quarterID := c.Query("quarter_id")
	if teamID == "" || quarterID == "" {
		response.BadRequest(c, "team_id and quarter_id are required")
		return
	}

	if err := h.settingsSvc.Delete(c.Request.Context(), teamID, quarterID); err != nil {
		h.handleSettingsError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *SettingsHandler) handleSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingsNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c)
	}
}
