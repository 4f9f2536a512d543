package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veho-technologies/tech-execution-planning/internal/dto"
	"github.com/veho-technologies/tech-execution-planning/internal/service"
	"github.com/veho-technologies/tech-execution-planning/pkg/response"
)

// HolidayHandler serves holiday CRUD plus federal auto-population.
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler creates a HolidayHandler.
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays handles GET /api/v1/holidays?quarter_id=....
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	quarterID := c.Query("quarter_id")
	if quarterID == "" {
		response.BadRequest(c, "quarter_id is required")
		return
	}

	holidays, err := h.holidaySvc.ListByQuarter(c.Request.Context(), quarterID)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, holidays)
}

// CreateHoliday handles POST /api/v1/holidays.
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid holiday payload: "+err.Error())
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.Created(c, holiday)
}

// DeleteHoliday handles DELETE /api/v1/holidays/:id.
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "holiday id must be numeric")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

// AutoPopulate handles POST /api/v1/holidays/auto-populate.
func (h *HolidayHandler) AutoPopulate(c *gin.Context) {
	var req dto.AutoPopulateHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	result, err := h.holidaySvc.AutoPopulate(c.Request.Context(), &req)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayNotFound),
		errors.Is(err, service.ErrQuarterNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrHolidayDateInvalid):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c)
	}
}
