package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar"
)

// ExportHandler streams plan exports as file downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPlan handles GET /api/v1/export/plan?team_id=...&quarter_id=....
func (h *ExportHandler) ExportPlan(c *gin.Context) {
	teamID := c.Query("team_id")
	quarterID := c.Query("quarter_id")
	if teamID == "" || quarterID == "" {
		response.BadRequest(c, "team_id and quarter_id are required")
		return
	}

	buf, filename, err := h.exportSvc.ExportPlan(c.Request.Context(), teamID, quarterID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportCalendar handles GET /api/v1/export/calendar?quarter_id=....
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	quarterID := c.Query("quarter_id")
	if quarterID == "" {
		response.BadRequest(c, "quarter_id is required")
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), quarterID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrExportNoSprints):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
