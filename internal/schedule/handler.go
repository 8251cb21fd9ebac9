package schedule

import (
	"errors"
	"net/http"

	"ptslot/internal/api"
	"ptslot/internal/availability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Get the weekly schedule
// @Description  Effective working hours for all seven weekdays, defaults included
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} availability.WeekdaySchedule
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	week, err := h.service.GetWeek(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, week)
}

// @Summary      Update the weekly schedule
// @Description  Admin-only: upsert one or more weekday rows
// @Tags         admin,schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body schedule.UpdateScheduleRequest true "Weekday rows"
// @Success      200 {array} availability.WeekdaySchedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/schedule [put]
func (h *Handler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	week, err := h.service.UpdateWeek(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_schedule"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update schedule"})
		return
	}

	c.JSON(http.StatusOK, week)
}

// @Summary      List holidays
// @Tags         admin,schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} schedule.Holiday
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/holidays [get]
func (h *Handler) ListHolidays(c *gin.Context) {
	holidays, err := h.service.ListHolidays(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch holidays"})
		return
	}

	c.JSON(http.StatusOK, holidays)
}

// @Summary      Add a holiday
// @Tags         admin,schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body schedule.CreateHolidayRequest true "Holiday"
// @Success      201 {object} schedule.Holiday
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/holidays [post]
func (h *Handler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	holiday, err := h.service.AddHoliday(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD", Code: "invalid_date"})
		case errors.Is(err, ErrHolidayExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Holiday already exists", Code: "holiday_exists"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create holiday"})
		}
		return
	}

	c.JSON(http.StatusCreated, holiday)
}

// @Summary      Remove a holiday
// @Tags         admin,schedule
// @Produce      json
// @Security     BearerAuth
// @Param        date path string true "Date (YYYY-MM-DD)"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/holidays/{date} [delete]
func (h *Handler) DeleteHoliday(c *gin.Context) {
	err := h.service.RemoveHoliday(c.Request.Context(), c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD", Code: "invalid_date"})
		case errors.Is(err, ErrHolidayNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Holiday not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete holiday"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Holiday removed"})
}
