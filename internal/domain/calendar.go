package domain

import "time"

// SeatBooking is a single reservation inside a calendar entry. It references
// the user but is owned by its entry.
type SeatBooking struct {
	ID              string    `json:"id"`
	CalendarEntryID int64     `json:"calendar_entry_id"`
	UserID          int64     `json:"user_id" validate:"required"`
	Seats           int       `json:"seats" validate:"required,gte=1"`
	BookedAt        time.Time `json:"booked_at"`
}

// CalendarEntry is the seat ledger for one (room, time slot) pair. At most one
// entry exists per pair. Invariant: SeatsBooked == sum of BookedBy[i].Seats and
// 0 <= SeatsBooked <= TotalCapacity.
type CalendarEntry struct {
	ID            int64         `json:"id"`
	RoomID        int64         `json:"room_id" validate:"required"`
	TimeSlotID    int64         `json:"time_slot_id" validate:"required"`
	TotalCapacity int           `json:"total_capacity"`
	SeatsBooked   int           `json:"seats_booked"`
	BookedBy      []SeatBooking `json:"booked_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations, populated on read paths that need descriptive fields.
	Room     *Room     `json:"room,omitempty"`
	TimeSlot *TimeSlot `json:"time_slot,omitempty"`
}

func (e *CalendarEntry) RoomAvailable() int {
	return e.TotalCapacity - e.SeatsBooked
}

func (e *CalendarEntry) IsAvailable() bool {
	return e.RoomAvailable() > 0
}

// FindBooking returns the booking with the given id, or nil.
func (e *CalendarEntry) FindBooking(bookingID string) *SeatBooking {
	for i := range e.BookedBy {
		if e.BookedBy[i].ID == bookingID {
			return &e.BookedBy[i]
		}
	}
	return nil
}
