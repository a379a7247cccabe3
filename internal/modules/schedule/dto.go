package schedule

type CreateTimeSlotRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	DayPeriod string `json:"day_time" binding:"required"`
	SlotName  string `json:"slot_name" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time" binding:"required"`   // HH:MM
}
