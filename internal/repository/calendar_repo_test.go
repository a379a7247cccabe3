package repository

import (
	"context"
	"testing"
	"time"

	"flexspaces/internal/database"
	"flexspaces/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLedgerDB(t *testing.T) *CalendarRepository {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(MigrationModels()...))

	return NewCalendarRepository(db)
}

func createEntry(t *testing.T, repo *CalendarRepository, roomID, slotID int64, capacity int) *domain.CalendarEntry {
	t.Helper()

	entry := &domain.CalendarEntry{
		RoomID:        roomID,
		TimeSlotID:    slotID,
		TotalCapacity: capacity,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	return entry
}

func TestCalendarRepository_BookSeats(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	entry := createEntry(t, repo, 1, 2, 10)

	got, err := repo.BookSeats(ctx, entry.ID, 7, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, got.SeatsBooked)
	assert.Equal(t, 6, got.RoomAvailable())
	require.Len(t, got.BookedBy, 1)
	assert.Equal(t, int64(7), got.BookedBy[0].UserID)
	assert.Equal(t, 4, got.BookedBy[0].Seats)
	assert.NotEmpty(t, got.BookedBy[0].ID)
}

func TestCalendarRepository_BookSeats_KeepsLedgerInvariant(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	entry := createEntry(t, repo, 1, 2, 10)

	_, err := repo.BookSeats(ctx, entry.ID, 7, 3)
	require.NoError(t, err)
	got, err := repo.BookSeats(ctx, entry.ID, 8, 5)
	require.NoError(t, err)

	sum := 0
	for _, b := range got.BookedBy {
		sum += b.Seats
	}
	assert.Equal(t, got.SeatsBooked, sum)
	assert.Equal(t, 8, got.SeatsBooked)
}

func TestCalendarRepository_BookSeats_InsufficientCapacity(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	entry := createEntry(t, repo, 1, 2, 10)

	_, err := repo.BookSeats(ctx, entry.ID, 7, 8)
	require.NoError(t, err)

	// 2 seats remain; asking for 4 must fail and report the real remainder.
	_, err = repo.BookSeats(ctx, entry.ID, 8, 4)

	var insufficient *InsufficientCapacityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Remaining)

	// The failed attempt must not leave a booking or touch the count.
	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.SeatsBooked)
	assert.Len(t, got.BookedBy, 1)
}

func TestCalendarRepository_BookSeats_SecondCompetitorLoses(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	entry := createEntry(t, repo, 1, 2, 2)

	// Two requests for the last 2 seats: exactly one can win.
	_, firstErr := repo.BookSeats(ctx, entry.ID, 7, 2)
	_, secondErr := repo.BookSeats(ctx, entry.ID, 8, 2)

	require.NoError(t, firstErr)
	var insufficient *InsufficientCapacityError
	require.ErrorAs(t, secondErr, &insufficient)
	assert.Equal(t, 0, insufficient.Remaining)

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SeatsBooked)
	assert.Len(t, got.BookedBy, 1)
}

func TestCalendarRepository_BookSeats_EntryMissing(t *testing.T) {
	repo := setupLedgerDB(t)

	_, err := repo.BookSeats(context.Background(), 12345, 7, 1)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestCalendarRepository_CancelBooking(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	entry := createEntry(t, repo, 1, 2, 10)
	booked, err := repo.BookSeats(ctx, entry.ID, 7, 5)
	require.NoError(t, err)
	bookingID := booked.BookedBy[0].ID

	released, after, err := repo.CancelBooking(ctx, entry.ID, bookingID)
	require.NoError(t, err)

	assert.Equal(t, 5, released)
	assert.Equal(t, 0, after.SeatsBooked)
	assert.Equal(t, 10, after.RoomAvailable())
	assert.Empty(t, after.BookedBy)

	// The booking is gone, cancelling again fails.
	_, _, err = repo.CancelBooking(ctx, entry.ID, bookingID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCalendarRepository_CancelBooking_WrongEntry(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	first := createEntry(t, repo, 1, 2, 10)
	second := createEntry(t, repo, 1, 3, 10)

	booked, err := repo.BookSeats(ctx, first.ID, 7, 2)
	require.NoError(t, err)

	// A booking id only resolves within its own entry.
	_, _, err = repo.CancelBooking(ctx, second.ID, booked.BookedBy[0].ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCalendarRepository_Create_DuplicatePair(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	createEntry(t, repo, 1, 2, 10)

	err := repo.Create(ctx, &domain.CalendarEntry{RoomID: 1, TimeSlotID: 2, TotalCapacity: 5})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// Same room, different slot is fine.
	err = repo.Create(ctx, &domain.CalendarEntry{RoomID: 1, TimeSlotID: 3, TotalCapacity: 5})
	assert.NoError(t, err)
}

func TestCalendarRepository_Create_SeedsBookings(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	entry := &domain.CalendarEntry{
		RoomID:        1,
		TimeSlotID:    2,
		TotalCapacity: 6,
		SeatsBooked:   4,
		BookedBy: []domain.SeatBooking{
			{UserID: 7, Seats: 3},
			{UserID: 8, Seats: 1},
		},
	}
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.GetByRoomAndSlot(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, got.SeatsBooked)
	require.Len(t, got.BookedBy, 2)
	assert.NotEmpty(t, got.BookedBy[0].ID)
	assert.NotEmpty(t, got.BookedBy[1].ID)
}

func TestCalendarRepository_GetByUserID(t *testing.T) {
	repo := setupLedgerDB(t)
	ctx := context.Background()

	first := createEntry(t, repo, 1, 2, 10)
	second := createEntry(t, repo, 2, 2, 10)
	third := createEntry(t, repo, 3, 2, 10)

	_, err := repo.BookSeats(ctx, first.ID, 7, 1)
	require.NoError(t, err)
	_, err = repo.BookSeats(ctx, second.ID, 7, 2)
	require.NoError(t, err)
	_, err = repo.BookSeats(ctx, third.ID, 9, 2)
	require.NoError(t, err)

	entries, err := repo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEmpty(t, e.BookedBy)
	}
}

func TestCalendarRepository_HasFutureBookings(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(MigrationModels()...))

	repo := NewCalendarRepository(db)
	slots := NewTimeSlotRepository(db)
	ctx := context.Background()

	slot := &domain.TimeSlot{
		Date:      time.Now().AddDate(0, 0, 3),
		DayPeriod: domain.PeriodMorning,
		SlotName:  "Morning Session",
		StartTime: "09:00",
		EndTime:   "12:00",
	}
	require.NoError(t, slots.Create(ctx, slot))

	entry := createEntry(t, repo, 1, slot.ID, 10)

	has, err := repo.HasFutureBookings(ctx, 1, time.Now())
	require.NoError(t, err)
	assert.False(t, has)

	_, err = repo.BookSeats(ctx, entry.ID, 7, 2)
	require.NoError(t, err)

	has, err = repo.HasFutureBookings(ctx, 1, time.Now())
	require.NoError(t, err)
	assert.True(t, has)

	// Other rooms are unaffected.
	has, err = repo.HasFutureBookings(ctx, 2, time.Now())
	require.NoError(t, err)
	assert.False(t, has)
}
