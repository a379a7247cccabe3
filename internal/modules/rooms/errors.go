package rooms

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("room not found")
	ErrTimeSlotInvalid = errors.New("one or more time slots not found or inactive")
	ErrNoSlots         = errors.New("no active time slots for this date and session")
	ErrHasBookings     = errors.New("room has existing bookings")
	ErrImageNotFound   = errors.New("image not found")
)
