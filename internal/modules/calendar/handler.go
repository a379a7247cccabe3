package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.GetCalendarByDate)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	cal := rg.Group("/calendar")
	{
		cal.POST("/book", h.BookRoomSlot)
		cal.POST("/:calendarId/book", h.BookSeats)
		cal.DELETE("/:calendarId/bookings/:bookingId", h.CancelBooking)
		cal.GET("/user/:userId/bookings", h.GetUserBookings)
	}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/calendar", h.CreateEntry)
}

// CreateEntry handles POST /api/v1/calendar (admin): pre-seeds a ledger entry,
// optionally with a capacity override different from the room default.
func (h *Handler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Time slot and room are required")
		return
	}

	entry, err := h.service.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create calendar entry")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, entry, "Calendar entry created successfully")
}

// GetCalendarByDate handles GET /api/v1/calendar?date=YYYY-MM-DD&dayTime=Morning
func (h *Handler) GetCalendarByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date is required (YYYY-MM-DD format)")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be in YYYY-MM-DD format")
		return
	}

	var period domain.DayPeriod
	if raw := c.Query("dayTime"); raw != "" {
		period, err = domain.ParseDayPeriod(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "dayTime must be Morning, Afternoon or Evening")
			return
		}
	}

	res, err := h.service.CalendarByDate(c.Request.Context(), date, period)
	if err != nil {
		if errors.Is(err, ErrTimeSlotNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No time slots found for "+dateStr)
			return
		}
		h.writeError(c, err, "Failed to load calendar")
		return
	}

	response.Success(c, http.StatusOK, res)
}

// BookSeats handles POST /api/v1/calendar/:calendarId/book
func (h *Handler) BookSeats(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("calendarId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid calendar entry ID")
		return
	}

	var req BookSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "User ID and number of seats (minimum 1) are required")
		return
	}

	entry, err := h.service.BookSeats(c.Request.Context(), entryID, req.UserID, req.Seats)
	if err != nil {
		h.writeError(c, err, "Failed to book seats")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, entry, "Seats booked successfully")
}

// BookRoomSlot handles POST /api/v1/calendar/book — books a room/slot pair,
// creating the ledger entry lazily on first use.
func (h *Handler) BookRoomSlot(c *gin.Context) {
	var req BookRoomSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Room, time slot, user ID and seats (minimum 1) are required")
		return
	}

	entry, err := h.service.BookRoomSlot(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to book seats")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, entry, "Seats booked successfully")
}

// CancelBooking handles DELETE /api/v1/calendar/:calendarId/bookings/:bookingId
func (h *Handler) CancelBooking(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("calendarId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid calendar entry ID")
		return
	}
	bookingID := c.Param("bookingId")

	res, err := h.service.CancelBooking(c.Request.Context(), entryID, bookingID)
	if err != nil {
		h.writeError(c, err, "Failed to cancel booking")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, res, "Booking cancelled successfully")
}

// GetUserBookings handles GET /api/v1/calendar/user/:userId/bookings.
// An empty list is a success, not an error.
func (h *Handler) GetUserBookings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	bookings, err := h.service.UserBookings(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings":       bookings,
		"total_bookings": len(bookings),
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var insufficient *InsufficientCapacityError

	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrTimeSlotNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Time slot not found")
	case errors.Is(err, ErrEntryNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Calendar entry not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrDuplicateEntry):
		response.Error(c, http.StatusConflict, "DUPLICATE_ENTRY", "Calendar entry already exists for this room and time slot")
	case errors.As(err, &insufficient):
		response.ErrorWithDetails(c, http.StatusBadRequest, "INSUFFICIENT_CAPACITY",
			insufficient.Error(), gin.H{"remaining": insufficient.Remaining})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
