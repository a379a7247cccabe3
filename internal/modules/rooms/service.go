package rooms

import (
	"context"
	"errors"
	"time"

	"flexspaces/internal/domain"
	"flexspaces/internal/modules/calendar"
	"flexspaces/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	rooms  RoomRepository
	slots  TimeSlotReader
	ledger LedgerReader
}

func NewService(rooms RoomRepository, slots TimeSlotReader, ledger LedgerReader) *Service {
	return &Service{
		rooms:  rooms,
		slots:  slots,
		ledger: ledger,
	}
}

func (s *Service) CreateRoom(ctx context.Context, createdBy int64, req CreateRoomRequest) (*domain.Room, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrValidation
	}

	status := domain.RoomUpcoming
	if req.Status != "" {
		parsed, err := domain.ParseRoomStatus(req.Status)
		if err != nil {
			return nil, ErrValidation
		}
		status = parsed
	}

	if err := s.checkSlotsActive(ctx, req.TimeSlotIDs); err != nil {
		return nil, err
	}

	images := make([]domain.RoomImage, 0, len(req.Images))
	for _, im := range req.Images {
		images = append(images, domain.RoomImage{
			Filename:     im.Filename,
			OriginalName: im.OriginalName,
			Mimetype:     im.Mimetype,
			Size:         im.Size,
		})
	}

	room := &domain.Room{
		Name:            req.Name,
		Capacity:        req.Capacity,
		Status:          status,
		PricePerSession: req.PricePerSession,
		Amenities:       req.Amenities,
		Images:          images,
		TimeSlotIDs:     req.TimeSlotIDs,
		IsActive:        true,
		CreatedBy:       createdBy,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRooms(ctx context.Context, page, limit int) (*RoomListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	rooms, err := s.rooms.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &RoomListResponse{
		Rooms: rooms,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

func (s *Service) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 || *req.Capacity > 500 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.Status != nil {
		status, err := domain.ParseRoomStatus(*req.Status)
		if err != nil {
			return nil, ErrValidation
		}
		room.Status = status
	}
	if req.PricePerSession != nil {
		if *req.PricePerSession < 0 {
			return nil, ErrValidation
		}
		room.PricePerSession = *req.PricePerSession
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	if req.TimeSlotIDs != nil {
		if err := s.checkSlotsActive(ctx, *req.TimeSlotIDs); err != nil {
			return nil, err
		}
		room.TimeSlotIDs = *req.TimeSlotIDs
	} else {
		room.TimeSlotIDs = nil // leave links untouched
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.GetRoomByID(ctx, id)
}

// DeleteRoom soft-deletes. Rooms with booked seats on today-or-future slots
// cannot be deleted; cancel the bookings first.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.GetRoomByID(ctx, id); err != nil {
		return err
	}

	booked, err := s.ledger.HasFutureBookings(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if booked {
		return ErrHasBookings
	}

	if err := s.rooms.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) DeleteRoomImage(ctx context.Context, roomID, imageID int64) error {
	if _, err := s.GetRoomByID(ctx, roomID); err != nil {
		return err
	}
	if err := s.rooms.DeleteImage(ctx, roomID, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	return nil
}

// AvailableRoomsBySession derives per-slot availability for every room that
// serves the (date, day period) pair, reconciling the catalog with the ledger.
// Rooms with no ledger entry for a slot count as fully available; a room is
// listed only if at least one of its slots still has seats.
func (s *Service) AvailableRoomsBySession(ctx context.Context, date time.Time, period domain.DayPeriod) (*AvailableRoomsResponse, error) {
	slots, err := s.slots.GetByDate(ctx, date, period)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	slotByID := make(map[int64]domain.TimeSlot, len(slots))
	slotIDs := make([]int64, 0, len(slots))
	for _, sl := range slots {
		slotByID[sl.ID] = sl
		slotIDs = append(slotIDs, sl.ID)
	}

	matchedRooms, err := s.rooms.GetByTimeSlotIDs(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetBySlotIDs(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	type pairKey struct{ roomID, slotID int64 }
	entryByPair := make(map[pairKey]*domain.CalendarEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		entryByPair[pairKey{e.RoomID, e.TimeSlotID}] = e
	}

	views := make([]AvailableRoomView, 0, len(matchedRooms))
	for _, room := range matchedRooms {
		slotViews := make([]SlotAvailabilityView, 0, len(room.TimeSlotIDs))
		hasAvailability := false

		for _, slotID := range room.TimeSlotIDs {
			sl, ok := slotByID[slotID]
			if !ok {
				continue
			}

			avail := calendar.Resolve(room.Capacity, entryByPair[pairKey{room.ID, slotID}])
			if avail.IsAvailable {
				hasAvailability = true
			}

			slotViews = append(slotViews, SlotAvailabilityView{
				SlotID:        sl.ID,
				Date:          sl.Date,
				Day:           sl.Day,
				DayPeriod:     string(sl.DayPeriod),
				SlotName:      sl.SlotName,
				TimeRange:     sl.TimeRange(),
				TotalCapacity: avail.TotalCapacity,
				SeatsBooked:   avail.SeatsBooked,
				RoomAvailable: avail.RoomAvailable,
				IsAvailable:   avail.IsAvailable,
			})
		}

		if !hasAvailability {
			continue
		}
		views = append(views, AvailableRoomView{
			RoomID:          room.ID,
			RoomName:        room.Name,
			Capacity:        room.Capacity,
			Status:          string(room.Status),
			PricePerSession: room.PricePerSession,
			Amenities:       room.Amenities,
			Images:          room.Images,
			TimeSlots:       slotViews,
			HasAvailability: true,
		})
	}

	return &AvailableRoomsResponse{
		Date:                date.Format("2006-01-02"),
		DayPeriod:           string(period),
		AvailableRooms:      views,
		TotalAvailableRooms: len(views),
	}, nil
}

func (s *Service) checkSlotsActive(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.slots.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrTimeSlotInvalid
	}
	return nil
}
