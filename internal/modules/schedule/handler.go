package schedule

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
	rg.GET("/day-time-slots", h.GetTimeSlotsByDate)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	slotGroup := rg.Group("/day-time-slots")
	{
		slotGroup.POST("", h.CreateTimeSlot)
		slotGroup.DELETE("/:id", h.DeactivateTimeSlot)
	}
}

func (h *Handler) CreateTimeSlot(c *gin.Context) {
	var req CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date, day_time, slot_name, start_time and end_time are required")
		return
	}

	slot, err := h.service.CreateTimeSlot(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, day period or time range")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create time slot")
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, slot, "Time slot created successfully")
}

func (h *Handler) GetTimeSlotsByDate(c *gin.Context) {
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

	slots, err := h.service.GetTimeSlotsByDate(c.Request.Context(), date, period)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load time slots")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"time_slots": slots,
		"total":      len(slots),
	})
}

func (h *Handler) DeactivateTimeSlot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid time slot ID")
		return
	}

	if err := h.service.DeactivateTimeSlot(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Time slot not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate time slot")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "Time slot deactivated successfully")
}
