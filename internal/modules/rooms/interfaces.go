package rooms

import (
	"context"
	"time"

	"flexspaces/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.Room, error)
	CountActive(ctx context.Context) (int64, error)
	GetByTimeSlotIDs(ctx context.Context, slotIDs []int64) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	SoftDelete(ctx context.Context, id int64) error
	DeleteImage(ctx context.Context, roomID, imageID int64) error
}

type TimeSlotReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.TimeSlot, error)
	GetByDate(ctx context.Context, date time.Time, period domain.DayPeriod) ([]domain.TimeSlot, error)
}

// LedgerReader gives the catalog a read-only window into the booking ledger
// for availability derivation and delete guards.
type LedgerReader interface {
	GetBySlotIDs(ctx context.Context, slotIDs []int64) ([]domain.CalendarEntry, error)
	HasFutureBookings(ctx context.Context, roomID int64, from time.Time) (bool, error)
}
