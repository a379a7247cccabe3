package calendar

import "flexspaces/internal/domain"

// Availability is the derived seat view for one (room, time slot) pair. It is
// never stored; Resolve recomputes it from the ledger on every read.
type Availability struct {
	TotalCapacity int  `json:"total_capacity"`
	SeatsBooked   int  `json:"seats_booked"`
	RoomAvailable int  `json:"room_available"`
	IsAvailable   bool `json:"is_available"`

	// Seeded is true when a ledger entry backs the numbers, false when the
	// pair has never been booked and the room default applies.
	Seeded bool `json:"-"`
}

// Resolve derives availability for a room/slot pair. A nil entry means the
// pair is virgin: the full room capacity is available.
func Resolve(roomCapacity int, entry *domain.CalendarEntry) Availability {
	if entry == nil {
		return Availability{
			TotalCapacity: roomCapacity,
			SeatsBooked:   0,
			RoomAvailable: roomCapacity,
			IsAvailable:   roomCapacity > 0,
		}
	}

	avail := entry.RoomAvailable()
	return Availability{
		TotalCapacity: entry.TotalCapacity,
		SeatsBooked:   entry.SeatsBooked,
		RoomAvailable: avail,
		IsAvailable:   avail > 0,
		Seeded:        true,
	}
}
