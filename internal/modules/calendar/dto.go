package calendar

import (
	"time"

	"flexspaces/internal/domain"
)

type SeedBooking struct {
	UserID int64 `json:"user_id" validate:"required"`
	Seats  int   `json:"seats" validate:"required,gte=1"`
}

type CreateEntryRequest struct {
	RoomID        int64         `json:"room_id" binding:"required"`
	TimeSlotID    int64         `json:"time_slot_id" binding:"required"`
	TotalCapacity *int          `json:"total_capacity,omitempty"`
	BookedBy      []SeedBooking `json:"booked_by,omitempty"`
}

type BookSeatsRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	Seats  int   `json:"seats" binding:"required,gte=1"`
}

type BookRoomSlotRequest struct {
	RoomID     int64 `json:"room_id" binding:"required"`
	TimeSlotID int64 `json:"time_slot_id" binding:"required"`
	UserID     int64 `json:"user_id" binding:"required"`
	Seats      int   `json:"seats" binding:"required,gte=1"`
}

type RoomSummary struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Capacity        int      `json:"capacity"`
	Status          string   `json:"status"`
	PricePerSession float64  `json:"price_per_session"`
	Amenities       []string `json:"amenities,omitempty"`
}

type SlotSummary struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Day       string    `json:"day"`
	DayPeriod string    `json:"day_time"`
	SlotName  string    `json:"slot_name"`
	TimeRange string    `json:"time_range"`
}

// EntryView is a ledger entry ready for serialization, with derived
// availability and room/slot descriptive fields attached.
type EntryView struct {
	ID            int64                `json:"id"`
	RoomID        int64                `json:"room_id"`
	TimeSlotID    int64                `json:"time_slot_id"`
	TotalCapacity int                  `json:"total_capacity"`
	SeatsBooked   int                  `json:"seats_booked"`
	RoomAvailable int                  `json:"room_available"`
	IsAvailable   bool                 `json:"is_available"`
	BookedBy      []domain.SeatBooking `json:"booked_by"`
	Room          *RoomSummary         `json:"room,omitempty"`
	TimeSlot      *SlotSummary         `json:"time_slot,omitempty"`
}

type CalendarSummary struct {
	TotalEntries        int `json:"total_entries"`
	TotalBookedSeats    int `json:"total_booked_seats"`
	TotalAvailableSeats int `json:"total_available_seats"`
}

type CalendarByDateResponse struct {
	Date           string                 `json:"date"`
	GroupedEntries map[string][]EntryView `json:"grouped_entries"`
	Summary        CalendarSummary        `json:"summary"`
}

type CancelResult struct {
	SeatsReleased int       `json:"seats_released"`
	Entry         EntryView `json:"entry"`
}

// UserBookingView is one booking of one user, flattened for display.
type UserBookingView struct {
	BookingID       string    `json:"booking_id"`
	CalendarID      int64     `json:"calendar_id"`
	Date            time.Time `json:"date"`
	Day             string    `json:"day"`
	DayPeriod       string    `json:"day_time"`
	SlotName        string    `json:"slot_name"`
	TimeRange       string    `json:"time_range"`
	RoomName        string    `json:"room_name"`
	Seats           int       `json:"seats"`
	PricePerSession float64   `json:"price_per_session"`
	TotalPrice      float64   `json:"total_price"`
	BookedAt        time.Time `json:"booked_at"`
}
