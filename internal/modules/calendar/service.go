package calendar

import (
	"context"
	"errors"
	"sort"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	entries CalendarRepository
	rooms   RoomReader
	slots   TimeSlotReader
}

func NewService(entries CalendarRepository, rooms RoomReader, slots TimeSlotReader) *Service {
	return &Service{
		entries: entries,
		rooms:   rooms,
		slots:   slots,
	}
}

// CreateEntry pre-seeds a ledger row for a (room, time slot) pair, typically
// to set a capacity different from the room default. TotalCapacity falls back
// to the room's capacity; seed bookings set seatsBooked to their sum.
func (s *Service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*EntryView, error) {
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	slot, err := s.slots.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}

	capacity := room.Capacity
	if req.TotalCapacity != nil {
		if *req.TotalCapacity < 1 {
			return nil, ErrValidation
		}
		capacity = *req.TotalCapacity
	}

	seeded := make([]domain.SeatBooking, 0, len(req.BookedBy))
	seatsBooked := 0
	for _, b := range req.BookedBy {
		if b.UserID == 0 || b.Seats < 1 {
			return nil, ErrValidation
		}
		seatsBooked += b.Seats
		seeded = append(seeded, domain.SeatBooking{
			UserID: b.UserID,
			Seats:  b.Seats,
		})
	}
	if seatsBooked > capacity {
		return nil, ErrValidation
	}

	entry := &domain.CalendarEntry{
		RoomID:        req.RoomID,
		TimeSlotID:    req.TimeSlotID,
		TotalCapacity: capacity,
		SeatsBooked:   seatsBooked,
		BookedBy:      seeded,
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}

	view := s.buildView(entry, room, slot)
	return &view, nil
}

// BookSeats reserves seats on an existing entry. The repository performs the
// capacity check and the increment as one atomic update.
func (s *Service) BookSeats(ctx context.Context, entryID, userID int64, seats int) (*EntryView, error) {
	if userID == 0 || seats < 1 {
		return nil, ErrValidation
	}

	entry, err := s.entries.BookSeats(ctx, entryID, userID, seats)
	if err != nil {
		return nil, s.mapLedgerError(err)
	}

	view := s.populatedView(ctx, entry)
	return &view, nil
}

// BookRoomSlot books against a (room, time slot) pair, lazily creating the
// ledger entry on first use. A lost creation race is resolved by re-reading
// the entry the winner created.
func (s *Service) BookRoomSlot(ctx context.Context, req BookRoomSlotRequest) (*EntryView, error) {
	if req.UserID == 0 || req.Seats < 1 {
		return nil, ErrValidation
	}

	entry, err := s.entries.GetByRoomAndSlot(ctx, req.RoomID, req.TimeSlotID)
	if err != nil {
		if !errors.Is(err, repository.ErrEntryNotFound) {
			return nil, err
		}

		room, err := s.rooms.GetByID(ctx, req.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		if _, err := s.slots.GetByID(ctx, req.TimeSlotID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTimeSlotNotFound
			}
			return nil, err
		}

		fresh := &domain.CalendarEntry{
			RoomID:        req.RoomID,
			TimeSlotID:    req.TimeSlotID,
			TotalCapacity: room.Capacity,
		}
		switch err := s.entries.Create(ctx, fresh); {
		case err == nil:
			entry = fresh
		case errors.Is(err, repository.ErrDuplicateEntry):
			entry, err = s.entries.GetByRoomAndSlot(ctx, req.RoomID, req.TimeSlotID)
			if err != nil {
				return nil, s.mapLedgerError(err)
			}
		default:
			return nil, err
		}
	}

	return s.BookSeats(ctx, entry.ID, req.UserID, req.Seats)
}

// CancelBooking releases a booking's seats back to the entry.
func (s *Service) CancelBooking(ctx context.Context, entryID int64, bookingID string) (*CancelResult, error) {
	released, entry, err := s.entries.CancelBooking(ctx, entryID, bookingID)
	if err != nil {
		return nil, s.mapLedgerError(err)
	}

	return &CancelResult{
		SeatsReleased: released,
		Entry:         s.populatedView(ctx, entry),
	}, nil
}

// CalendarByDate returns the ledger for a date grouped by day period, plus
// summary totals. Fails with ErrTimeSlotNotFound when the date has no active
// slots.
func (s *Service) CalendarByDate(ctx context.Context, date time.Time, period domain.DayPeriod) (*CalendarByDateResponse, error) {
	slots, err := s.slots.GetByDate(ctx, date, period)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrTimeSlotNotFound
	}

	slotByID := make(map[int64]domain.TimeSlot, len(slots))
	slotIDs := make([]int64, 0, len(slots))
	grouped := make(map[string][]EntryView)
	for _, sl := range slots {
		slotByID[sl.ID] = sl
		slotIDs = append(slotIDs, sl.ID)
		if _, ok := grouped[string(sl.DayPeriod)]; !ok {
			grouped[string(sl.DayPeriod)] = []EntryView{}
		}
	}

	entries, err := s.entries.GetBySlotIDs(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	summary := CalendarSummary{TotalEntries: len(entries)}
	for i := range entries {
		e := entries[i]
		view := s.populatedView(ctx, &e)

		sl := slotByID[e.TimeSlotID]
		grouped[string(sl.DayPeriod)] = append(grouped[string(sl.DayPeriod)], view)

		summary.TotalBookedSeats += e.SeatsBooked
		summary.TotalAvailableSeats += e.RoomAvailable()
	}

	return &CalendarByDateResponse{
		Date:           date.Format("2006-01-02"),
		GroupedEntries: grouped,
		Summary:        summary,
	}, nil
}

// UserBookings lists every booking the user holds across the ledger, one row
// per booking, sorted by slot date ascending.
func (s *Service) UserBookings(ctx context.Context, userID int64) ([]UserBookingView, error) {
	entries, err := s.entries.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]UserBookingView, 0, len(entries))
	for i := range entries {
		e := entries[i]

		room, err := s.rooms.GetAnyByID(ctx, e.RoomID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		slot, err := s.slots.GetByID(ctx, e.TimeSlotID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		for _, b := range e.BookedBy {
			if b.UserID != userID {
				continue
			}

			v := UserBookingView{
				BookingID:  b.ID,
				CalendarID: e.ID,
				Seats:      b.Seats,
				BookedAt:   b.BookedAt,
			}
			if room != nil {
				v.RoomName = room.Name
				v.PricePerSession = room.PricePerSession
				v.TotalPrice = float64(b.Seats) * room.PricePerSession
			}
			if slot != nil {
				v.Date = slot.Date
				v.Day = slot.Day
				v.DayPeriod = string(slot.DayPeriod)
				v.SlotName = slot.SlotName
				v.TimeRange = slot.TimeRange()
			}
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].BookedAt.Before(out[j].BookedAt)
	})
	return out, nil
}

func (s *Service) mapLedgerError(err error) error {
	var insufficient *repository.InsufficientCapacityError
	switch {
	case errors.Is(err, repository.ErrEntryNotFound):
		return ErrEntryNotFound
	case errors.Is(err, repository.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, repository.ErrDuplicateEntry):
		return ErrDuplicateEntry
	case errors.As(err, &insufficient):
		return &InsufficientCapacityError{Remaining: insufficient.Remaining}
	}
	return err
}

// populatedView attaches room/slot summaries where available; lookups are
// best-effort since the entry itself is the source of truth.
func (s *Service) populatedView(ctx context.Context, e *domain.CalendarEntry) EntryView {
	var room *domain.Room
	var slot *domain.TimeSlot

	if r, err := s.rooms.GetAnyByID(ctx, e.RoomID); err == nil {
		room = r
	}
	if sl, err := s.slots.GetByID(ctx, e.TimeSlotID); err == nil {
		slot = sl
	}
	return s.buildView(e, room, slot)
}

func (s *Service) buildView(e *domain.CalendarEntry, room *domain.Room, slot *domain.TimeSlot) EntryView {
	avail := Resolve(0, e)

	view := EntryView{
		ID:            e.ID,
		RoomID:        e.RoomID,
		TimeSlotID:    e.TimeSlotID,
		TotalCapacity: avail.TotalCapacity,
		SeatsBooked:   avail.SeatsBooked,
		RoomAvailable: avail.RoomAvailable,
		IsAvailable:   avail.IsAvailable,
		BookedBy:      e.BookedBy,
	}
	if view.BookedBy == nil {
		view.BookedBy = []domain.SeatBooking{}
	}

	if room != nil {
		view.Room = &RoomSummary{
			ID:              room.ID,
			Name:            room.Name,
			Capacity:        room.Capacity,
			Status:          string(room.Status),
			PricePerSession: room.PricePerSession,
			Amenities:       room.Amenities,
		}
	}
	if slot != nil {
		view.TimeSlot = &SlotSummary{
			ID:        slot.ID,
			Date:      slot.Date,
			Day:       slot.Day,
			DayPeriod: string(slot.DayPeriod),
			SlotName:  slot.SlotName,
			TimeRange: slot.TimeRange(),
		}
	}
	return view
}
