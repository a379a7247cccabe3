package rooms

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
	roomGroup := rg.Group("/rooms")
	{
		roomGroup.GET("", h.GetRooms)
		roomGroup.GET("/available", h.GetAvailableRooms)
		roomGroup.GET("/:id", h.GetRoomByID)
	}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	roomGroup := rg.Group("/rooms")
	{
		roomGroup.POST("", h.CreateRoom)
		roomGroup.PUT("/:id", h.UpdateRoom)
		roomGroup.DELETE("/:id", h.DeleteRoom)
		roomGroup.DELETE("/:id/images/:imageId", h.DeleteRoomImage)
	}
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Room name, capacity and price per session are required")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to create room")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, room, "Room created successfully")
}

func (h *Handler) GetRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	res, err := h.service.GetRooms(c.Request.Context(), page, limit)
	if err != nil {
		h.writeError(c, err, "Failed to load rooms")
		return
	}

	response.Success(c, http.StatusOK, res)
}

// GetAvailableRooms handles GET /api/v1/rooms/available?date=YYYY-MM-DD&dayTime=Morning
func (h *Handler) GetAvailableRooms(c *gin.Context) {
	dateStr := c.Query("date")
	periodStr := c.Query("dayTime")
	if dateStr == "" || periodStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date and dayTime are required parameters")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be in YYYY-MM-DD format")
		return
	}
	period, err := domain.ParseDayPeriod(periodStr)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "dayTime must be Morning, Afternoon or Evening")
		return
	}

	res, err := h.service.AvailableRoomsBySession(c.Request.Context(), date, period)
	if err != nil {
		if errors.Is(err, ErrNoSlots) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND",
				"No active time slots found for "+periodStr+" on "+dateStr)
			return
		}
		h.writeError(c, err, "Failed to resolve availability")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	room, err := h.service.GetRoomByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load room")
		return
	}

	response.Success(c, http.StatusOK, room)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update room")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, room, "Room updated successfully")
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrHasBookings) {
			response.Error(c, http.StatusBadRequest, "HAS_BOOKINGS",
				"Cannot delete room with existing bookings. Cancel all bookings first.")
			return
		}
		h.writeError(c, err, "Failed to delete room")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Room deleted successfully")
}

func (h *Handler) DeleteRoomImage(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}
	imageID, err := strconv.ParseInt(c.Param("imageId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	if err := h.service.DeleteRoomImage(c.Request.Context(), roomID, imageID); err != nil {
		if errors.Is(err, ErrImageNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Image not found")
			return
		}
		h.writeError(c, err, "Failed to delete image")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Image deleted successfully")
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrTimeSlotInvalid):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found or inactive")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
