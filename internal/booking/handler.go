package booking

import (
	"errors"
	"net/http"

	"ptslot/internal/api"
	"ptslot/internal/auth"
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

// ListSlots godoc
// @Summary      List bookable slots
// @Description  Slots inside the trainer's working hours for one date, with availability flags.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  booking.SlotListResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      401   {object}  api.ErrorResponse
// @Router       /slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query parameter is required", Code: "invalid_date"})
		return
	}

	resp, err := h.service.ListBookableSlots(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_date"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list slots"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateBooking godoc
// @Summary      Book a slot
// @Description  Re-checks availability and books the slot for the caller.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      booking.CreateBookingRequest  true  "Slot to book"
// @Success      201      {object}  booking.Booking
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	booking, err := h.service.ConfirmBooking(c.Request.Context(), userID, req.Date, req.Time)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func writeBookingError(c *gin.Context, err error) {
	var unavailable *UnavailableError
	switch {
	case errors.Is(err, availability.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_date"})
	case errors.Is(err, availability.ErrInvalidTime):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_time"})
	case errors.Is(err, ErrSlotTaken):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error(), Code: "slot_taken"})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error(), Code: unavailable.Reason.String()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: ErrBookingFailed.Error(), Code: "booking_failed"})
	}
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   booking.Booking
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.ListMyBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBooking godoc
// @Summary      Cancel a booking
// @Description  Members cancel their own bookings; admins may cancel any.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  booking.CancelBookingResponse
// @Failure      401        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      500        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	err := h.service.CancelBooking(c.Request.Context(), userID, role == auth.RoleAdmin, c.Param("bookingID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found or already cancelled"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{Message: "Booking cancelled successfully"})
}

// Calendar godoc
// @Summary      Calendar feed
// @Description  Upcoming booked sessions of the caller as iCalendar.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      text/calendar
// @Success      200  {string}  string
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings/calendar.ics [get]
func (h *Handler) Calendar(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	feed, err := h.service.MyCalendar(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build calendar"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sessions.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// ListByDate godoc
// @Summary      List bookings for a date
// @Description  Admin-only: every booking on the date, cancelled ones included.
// @Tags         admin,bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   booking.BookingWithMember
// @Failure      400   {object}  api.ErrorResponse
// @Failure      401   {object}  api.ErrorResponse
// @Failure      403   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) ListByDate(c *gin.Context) {
	bookings, err := h.service.ListBookingsByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_date"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Stats godoc
// @Summary      Booking statistics
// @Description  Admin-only: booked and cancelled counts per session date and per member.
// @Tags         admin,bookings
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  true  "First date (YYYY-MM-DD)"
// @Param        to    query     string  true  "Last date (YYYY-MM-DD)"
// @Success      200   {object}  booking.StatsResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      401   {object}  api.ErrorResponse
// @Failure      403   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_date"})
		case errors.Is(err, ErrInvalidRange):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "invalid_range"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute statistics"})
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}
