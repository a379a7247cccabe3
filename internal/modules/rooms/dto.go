package rooms

import (
	"time"

	"flexspaces/internal/domain"
)

type ImageMeta struct {
	Filename     string `json:"filename" validate:"required"`
	OriginalName string `json:"original_name"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

type CreateRoomRequest struct {
	Name            string      `json:"name" validate:"required"`
	Capacity        int         `json:"capacity" validate:"required,gte=1,lte=500"`
	Status          string      `json:"status"`
	PricePerSession float64     `json:"price_per_session" validate:"gte=0"`
	Amenities       []string    `json:"amenities"`
	TimeSlotIDs     []int64     `json:"available_time_slots"`
	Images          []ImageMeta `json:"images"`
}

type UpdateRoomRequest struct {
	Name            *string   `json:"name,omitempty"`
	Capacity        *int      `json:"capacity,omitempty"`
	Status          *string   `json:"status,omitempty"`
	PricePerSession *float64  `json:"price_per_session,omitempty"`
	Amenities       *[]string `json:"amenities,omitempty"`
	TimeSlotIDs     *[]int64  `json:"available_time_slots,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type RoomListResponse struct {
	Rooms      []domain.Room `json:"rooms"`
	Pagination Pagination    `json:"pagination"`
}

// SlotAvailabilityView is one slot of one room with derived seat counts.
type SlotAvailabilityView struct {
	SlotID        int64     `json:"slot_id"`
	Date          time.Time `json:"date"`
	Day           string    `json:"day"`
	DayPeriod     string    `json:"day_time"`
	SlotName      string    `json:"slot_name"`
	TimeRange     string    `json:"time_range"`
	TotalCapacity int       `json:"total_capacity"`
	SeatsBooked   int       `json:"seats_booked"`
	RoomAvailable int       `json:"room_available"`
	IsAvailable   bool      `json:"is_available"`
}

type AvailableRoomView struct {
	RoomID          int64                  `json:"room_id"`
	RoomName        string                 `json:"room_name"`
	Capacity        int                    `json:"capacity"`
	Status          string                 `json:"status"`
	PricePerSession float64                `json:"price_per_session"`
	Amenities       []string               `json:"amenities,omitempty"`
	Images          []domain.RoomImage     `json:"images,omitempty"`
	TimeSlots       []SlotAvailabilityView `json:"time_slots"`
	HasAvailability bool                   `json:"has_availability"`
}

type AvailableRoomsResponse struct {
	Date                string              `json:"date"`
	DayPeriod           string              `json:"day_time"`
	AvailableRooms      []AvailableRoomView `json:"available_rooms"`
	TotalAvailableRooms int                 `json:"total_available_rooms"`
}
