package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrRoomNotFound     = errors.New("room not found")
	ErrTimeSlotNotFound = errors.New("time slot not found")
	ErrEntryNotFound    = errors.New("calendar entry not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDuplicateEntry   = errors.New("calendar entry already exists for this room and time slot")
)

// InsufficientCapacityError is returned when a book request exceeds the seats
// remaining; Remaining carries the actual count so the caller can retry with
// fewer seats.
type InsufficientCapacityError struct {
	Remaining int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("not enough seats available, only %d left", e.Remaining)
}
