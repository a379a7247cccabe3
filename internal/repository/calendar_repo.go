package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flexspaces/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateEntry: a ledger entry already exists for the (room, slot) pair.
	ErrDuplicateEntry = errors.New("calendar entry already exists for this room and time slot")
	ErrEntryNotFound  = errors.New("calendar entry not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// InsufficientCapacityError reports the seats actually remaining when a book
// request does not fit.
type InsufficientCapacityError struct {
	Remaining int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("not enough seats available, only %d left", e.Remaining)
}

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

type calendarEntryModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomID        int64     `gorm:"column:room_id;uniqueIndex:idx_room_slot"`
	TimeSlotID    int64     `gorm:"column:time_slot_id;uniqueIndex:idx_room_slot"`
	TotalCapacity int       `gorm:"column:total_capacity"`
	SeatsBooked   int       `gorm:"column:seats_booked"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (calendarEntryModel) TableName() string { return "calendar_entries" }

type seatBookingModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	CalendarEntryID int64     `gorm:"column:calendar_entry_id;index"`
	UserID          int64     `gorm:"column:user_id;index"`
	Seats           int       `gorm:"column:seats"`
	BookedAt        time.Time `gorm:"column:booked_at"`
}

func (seatBookingModel) TableName() string { return "seat_bookings" }

func toDomainEntry(m calendarEntryModel, bookings []seatBookingModel) *domain.CalendarEntry {
	bs := make([]domain.SeatBooking, 0, len(bookings))
	for _, b := range bookings {
		bs = append(bs, domain.SeatBooking{
			ID:              b.ID,
			CalendarEntryID: b.CalendarEntryID,
			UserID:          b.UserID,
			Seats:           b.Seats,
			BookedAt:        b.BookedAt,
		})
	}

	return &domain.CalendarEntry{
		ID:            m.ID,
		RoomID:        m.RoomID,
		TimeSlotID:    m.TimeSlotID,
		TotalCapacity: m.TotalCapacity,
		SeatsBooked:   m.SeatsBooked,
		BookedBy:      bs,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// The pure-Go sqlite driver is not covered by gorm's error translation.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new ledger entry together with any seed bookings. The
// unique (room_id, time_slot_id) index turns a racing second create into
// ErrDuplicateEntry.
func (r *CalendarRepository) Create(ctx context.Context, e *domain.CalendarEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		m := calendarEntryModel{
			RoomID:        e.RoomID,
			TimeSlotID:    e.TimeSlotID,
			TotalCapacity: e.TotalCapacity,
			SeatsBooked:   e.SeatsBooked,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i := range e.BookedBy {
			b := seatBookingModel{
				ID:              e.BookedBy[i].ID,
				CalendarEntryID: m.ID,
				UserID:          e.BookedBy[i].UserID,
				Seats:           e.BookedBy[i].Seats,
				BookedAt:        e.BookedBy[i].BookedAt,
			}
			if b.ID == "" {
				b.ID = uuid.NewString()
			}
			if b.BookedAt.IsZero() {
				b.BookedAt = now
			}
			if err := tx.Create(&b).Error; err != nil {
				return err
			}
			e.BookedBy[i].ID = b.ID
			e.BookedBy[i].CalendarEntryID = m.ID
			e.BookedBy[i].BookedAt = b.BookedAt
		}

		e.ID = m.ID
		e.CreatedAt = m.CreatedAt
		e.UpdatedAt = m.UpdatedAt
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

func (r *CalendarRepository) GetByID(ctx context.Context, id int64) (*domain.CalendarEntry, error) {
	var m calendarEntryModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, tx.Error
	}

	bookings, err := r.bookingsFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainEntry(m, bookings), nil
}

func (r *CalendarRepository) GetByRoomAndSlot(ctx context.Context, roomID, slotID int64) (*domain.CalendarEntry, error) {
	var m calendarEntryModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND time_slot_id = ?", roomID, slotID).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, tx.Error
	}

	bookings, err := r.bookingsFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainEntry(m, bookings), nil
}

func (r *CalendarRepository) GetBySlotIDs(ctx context.Context, slotIDs []int64) ([]domain.CalendarEntry, error) {
	if len(slotIDs) == 0 {
		return []domain.CalendarEntry{}, nil
	}

	var ms []calendarEntryModel
	tx := r.db.WithContext(ctx).
		Where("time_slot_id IN ?", slotIDs).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CalendarEntry, 0, len(ms))
	for _, m := range ms {
		bookings, err := r.bookingsFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toDomainEntry(m, bookings))
	}
	return out, nil
}

// GetByUserID returns every entry containing at least one booking by the user,
// bookings fully loaded.
func (r *CalendarRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.CalendarEntry, error) {
	var entryIDs []int64
	tx := r.db.WithContext(ctx).
		Model(&seatBookingModel{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("calendar_entry_id", &entryIDs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(entryIDs) == 0 {
		return []domain.CalendarEntry{}, nil
	}

	var ms []calendarEntryModel
	if tx := r.db.WithContext(ctx).Where("id IN ?", entryIDs).Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CalendarEntry, 0, len(ms))
	for _, m := range ms {
		bookings, err := r.bookingsFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toDomainEntry(m, bookings))
	}
	return out, nil
}

// BookSeats reserves seats atomically. The capacity check and the increment
// are a single conditional UPDATE, so two racing requests can never both pass
// the check: the second one sees RowsAffected == 0 and gets
// InsufficientCapacityError with the real remainder.
func (r *CalendarRepository) BookSeats(ctx context.Context, entryID int64, userID int64, seats int) (*domain.CalendarEntry, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
UPDATE calendar_entries
SET seats_booked = seats_booked + ?, updated_at = ?
WHERE id = ? AND seats_booked + ? <= total_capacity
`, seats, time.Now(), entryID, seats)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var m calendarEntryModel
			if err := tx.First(&m, entryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEntryNotFound
				}
				return err
			}
			return &InsufficientCapacityError{Remaining: m.TotalCapacity - m.SeatsBooked}
		}

		b := seatBookingModel{
			ID:              uuid.NewString(),
			CalendarEntryID: entryID,
			UserID:          userID,
			Seats:           seats,
			BookedAt:        time.Now(),
		}
		return tx.Create(&b).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, entryID)
}

// CancelBooking removes the booking and releases its seats. The decrement is
// clamped at zero; with the ledger invariant intact the clamp never fires.
func (r *CalendarRepository) CancelBooking(ctx context.Context, entryID int64, bookingID string) (int, *domain.CalendarEntry, error) {
	var released int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m calendarEntryModel
		if err := tx.First(&m, entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		var b seatBookingModel
		err := tx.Where("id = ? AND calendar_entry_id = ?", bookingID, entryID).First(&b).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := tx.Delete(&seatBookingModel{}, "id = ?", b.ID).Error; err != nil {
			return err
		}

		res := tx.Exec(`
UPDATE calendar_entries
SET seats_booked = CASE WHEN seats_booked > ? THEN seats_booked - ? ELSE 0 END,
    updated_at = ?
WHERE id = ?
`, b.Seats, b.Seats, time.Now(), entryID)
		if res.Error != nil {
			return res.Error
		}

		released = b.Seats
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	entry, err := r.GetByID(ctx, entryID)
	if err != nil {
		return 0, nil, err
	}
	return released, entry, nil
}

// HasFutureBookings reports whether the room has any booked seats on slots
// dated from `from` onward. Used to guard room soft-deletes.
func (r *CalendarRepository) HasFutureBookings(ctx context.Context, roomID int64, from time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&calendarEntryModel{}).
		Joins("JOIN time_slots ON time_slots.id = calendar_entries.time_slot_id").
		Where("calendar_entries.room_id = ? AND calendar_entries.seats_booked > 0 AND time_slots.date >= ?",
			roomID, truncateToDay(from)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *CalendarRepository) bookingsFor(ctx context.Context, entryID int64) ([]seatBookingModel, error) {
	var bookings []seatBookingModel
	tx := r.db.WithContext(ctx).
		Where("calendar_entry_id = ?", entryID).
		Order("booked_at ASC").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

// Models exported for migration wiring in cmd/ and tests.
func MigrationModels() []any {
	return []any{
		&userModel{},
		&roomModel{},
		&roomImageModel{},
		&roomTimeSlotModel{},
		&timeSlotModel{},
		&calendarEntryModel{},
		&seatBookingModel{},
	}
}
