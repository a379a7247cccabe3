package calendar

import (
	"context"
	"time"

	"flexspaces/internal/domain"
)

// CalendarRepository is the ledger storage. Book/cancel must be atomic per
// entry; the capacity check happens inside the storage layer, not here.
type CalendarRepository interface {
	Create(ctx context.Context, e *domain.CalendarEntry) error
	GetByID(ctx context.Context, id int64) (*domain.CalendarEntry, error)
	GetByRoomAndSlot(ctx context.Context, roomID, slotID int64) (*domain.CalendarEntry, error)
	GetBySlotIDs(ctx context.Context, slotIDs []int64) ([]domain.CalendarEntry, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.CalendarEntry, error)
	BookSeats(ctx context.Context, entryID, userID int64, seats int) (*domain.CalendarEntry, error)
	CancelBooking(ctx context.Context, entryID int64, bookingID string) (int, *domain.CalendarEntry, error)
}

// RoomReader — only the lookups the calendar service needs.
type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetAnyByID(ctx context.Context, id int64) (*domain.Room, error)
}

// TimeSlotReader — only the lookups the calendar service needs.
type TimeSlotReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	GetByDate(ctx context.Context, date time.Time, period domain.DayPeriod) ([]domain.TimeSlot, error)
}
