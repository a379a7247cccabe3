package schedule

import (
	"context"
	"errors"
	"time"

	"flexspaces/internal/domain"

	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(ctx context.Context, s *domain.TimeSlot) error
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	GetByDate(ctx context.Context, date time.Time, period domain.DayPeriod) ([]domain.TimeSlot, error)
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	slots TimeSlotRepository
}

func NewService(slots TimeSlotRepository) *Service {
	return &Service{slots: slots}
}

// CreateTimeSlot registers a new bookable slot. Slots are immutable after
// creation; only the active flag can change.
func (s *Service) CreateTimeSlot(ctx context.Context, req CreateTimeSlotRequest) (*domain.TimeSlot, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	period, err := domain.ParseDayPeriod(req.DayPeriod)
	if err != nil {
		return nil, ErrValidation
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}

	slot := &domain.TimeSlot{
		Date:      date,
		DayPeriod: period,
		SlotName:  req.SlotName,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *Service) GetTimeSlotsByDate(ctx context.Context, date time.Time, period domain.DayPeriod) ([]domain.TimeSlot, error) {
	return s.slots.GetByDate(ctx, date, period)
}

func (s *Service) DeactivateTimeSlot(ctx context.Context, id int64) error {
	if err := s.slots.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
