package schedule

import (
	"context"
	"testing"
	"time"

	"flexspaces/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Create(ctx context.Context, s *domain.TimeSlot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *mockSlotRepo) GetByDate(ctx context.Context, date time.Time, period domain.DayPeriod) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, date, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

func (m *mockSlotRepo) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_CreateTimeSlot(t *testing.T) {
	slots := new(mockSlotRepo)

	slots.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.TimeSlot) bool {
		return s.DayPeriod == domain.PeriodMorning && s.StartTime == "09:00" && s.EndTime == "12:00"
	})).Return(nil)

	service := NewService(slots)

	slot, err := service.CreateTimeSlot(context.Background(), CreateTimeSlotRequest{
		Date:      "2026-09-01",
		DayPeriod: "Morning",
		SlotName:  "Morning Session",
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Morning Session", slot.SlotName)
	slots.AssertExpectations(t)
}

func TestService_CreateTimeSlot_RejectsBadInput(t *testing.T) {
	service := NewService(new(mockSlotRepo))

	cases := []CreateTimeSlotRequest{
		{Date: "not-a-date", DayPeriod: "Morning", SlotName: "S", StartTime: "09:00", EndTime: "12:00"},
		{Date: "2026-09-01", DayPeriod: "Midnight", SlotName: "S", StartTime: "09:00", EndTime: "12:00"},
		{Date: "2026-09-01", DayPeriod: "Morning", SlotName: "S", StartTime: "25:00", EndTime: "12:00"},
		// End before start.
		{Date: "2026-09-01", DayPeriod: "Morning", SlotName: "S", StartTime: "12:00", EndTime: "09:00"},
	}

	for _, req := range cases {
		_, err := service.CreateTimeSlot(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_DeactivateTimeSlot_NotFound(t *testing.T) {
	slots := new(mockSlotRepo)

	slots.On("Deactivate", mock.Anything, int64(404)).Return(gorm.ErrRecordNotFound)

	service := NewService(slots)

	assert.ErrorIs(t, service.DeactivateTimeSlot(context.Background(), 404), ErrNotFound)
}
