package domain

import (
	"errors"
	"time"
)

type RoomStatus string

const (
	RoomUpcoming  RoomStatus = "Upcoming"
	RoomCancelled RoomStatus = "Cancelled"
	RoomCompleted RoomStatus = "Completed"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	switch RoomStatus(s) {
	case RoomUpcoming, RoomCancelled, RoomCompleted:
		return RoomStatus(s), nil
	}
	return "", errors.New("unknown room status")
}

// RoomImage holds upload metadata only; the file itself lives outside the API.
type RoomImage struct {
	ID           int64  `json:"id"`
	RoomID       int64  `json:"room_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name,omitempty"`
	Mimetype     string `json:"mimetype,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

type Room struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name" validate:"required"`
	Capacity        int         `json:"capacity" validate:"required,gte=1,lte=500"`
	Status          RoomStatus  `json:"status"`
	PricePerSession float64     `json:"price_per_session" validate:"required,gte=0"`
	Amenities       []string    `json:"amenities,omitempty"`
	Images          []RoomImage `json:"images,omitempty"`
	TimeSlotIDs     []int64     `json:"available_time_slots,omitempty"`
	IsActive        bool        `json:"is_active"`
	CreatedBy       int64       `json:"created_by,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
