package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// QuarterHandler serves quarter CRUD plus the yearly initializer.
type QuarterHandler struct {
	quarterSvc service.QuarterService
}

// NewQuarterHandler creates a QuarterHandler.
func NewQuarterHandler(quarterSvc service.QuarterService) *QuarterHandler {
	return &QuarterHandler{quarterSvc: quarterSvc}
}

// ListQuarters handles GET /api/v1/quarters.
func (h *QuarterHandler) ListQuarters(c *gin.Context) {
	quarters, err := h.quarterSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, quarters)
}

// GetQuarter handles GET /api/v1/quarters/:id.
func (h *QuarterHandler) GetQuarter(c *gin.Context) {
	quarter, err := h.quarterSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleQuarterError(c, err)
		return
	}
	response.OK(c, quarter)
}

// CreateQuarter handles POST /api/v1/quarters.
func (h *QuarterHandler) CreateQuarter(c *gin.Context) {
	var req dto.CreateQuarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid quarter payload: "+err.Error())
		return
	}

	quarter, err := h.quarterSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleQuarterError(c, err)
		return
	}
	response.Created(c, quarter)
}

// UpdateQuarter handles PUT /api/v1/quarters/:id.
func (h *QuarterHandler) UpdateQuarter(c *gin.Context) {
	var req dto.UpdateQuarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid quarter payload: "+err.Error())
		return
	}

	quarter, err := h.quarterSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleQuarterError(c, err)
		return
	}
	response.OK(c, quarter)
}

// DeleteQuarter handles DELETE /api/v1/quarters/:id.
func (h *QuarterHandler) DeleteQuarter(c *gin.Context) {
	if err := h.quarterSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleQuarterError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// InitQuarters handles POST /api/v1/quarters/init.
func (h *QuarterHandler) InitQuarters(c *gin.Context) {
	var req dto.InitQuartersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid init payload: "+err.Error())
		return
	}

	result, err := h.quarterSvc.InitYears(c.Request.Context(), &req)
	if err != nil {
		h.handleQuarterError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *QuarterHandler) handleQuarterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrQuarterDateInvalid),
		errors.Is(err, service.ErrYearRangeInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
