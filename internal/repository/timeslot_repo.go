package repository

import (
	"context"
	"time"

	"flexspaces/internal/domain"

	"gorm.io/gorm"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

type timeSlotModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Date      time.Time `gorm:"column:date;index"`
	Day       string    `gorm:"column:day"`
	DayPeriod string    `gorm:"column:day_period"`
	SlotName  string    `gorm:"column:slot_name"`
	StartTime string    `gorm:"column:start_time"`
	EndTime   string    `gorm:"column:end_time"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (timeSlotModel) TableName() string { return "time_slots" }

func toDomainTimeSlot(m timeSlotModel) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:        m.ID,
		Date:      m.Date,
		Day:       m.Day,
		DayPeriod: domain.DayPeriod(m.DayPeriod),
		SlotName:  m.SlotName,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// truncateToDay drops the time-of-day component so slots compare by date only.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *TimeSlotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	date := truncateToDay(s.Date)
	m := timeSlotModel{
		Date:      date,
		Day:       date.Weekday().String(),
		DayPeriod: string(s.DayPeriod),
		SlotName:  s.SlotName,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainTimeSlot(m)
	return nil
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var m timeSlotModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTimeSlot(m), nil
}

// GetByIDs returns the active slots among ids, in no particular order.
func (r *TimeSlotRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.TimeSlot, error) {
	if len(ids) == 0 {
		return []domain.TimeSlot{}, nil
	}

	var ms []timeSlotModel
	tx := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TimeSlot, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainTimeSlot(m))
	}
	return out, nil
}

// GetByDate returns active slots on the given date, optionally narrowed to a
// day period.
func (r *TimeSlotRepository) GetByDate(ctx context.Context, date time.Time, period domain.DayPeriod) ([]domain.TimeSlot, error) {
	q := r.db.WithContext(ctx).
		Where("date = ? AND is_active = ?", truncateToDay(date), true)
	if period != "" {
		q = q.Where("day_period = ?", string(period))
	}

	var ms []timeSlotModel
	if tx := q.Order("start_time ASC").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TimeSlot, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainTimeSlot(m))
	}
	return out, nil
}

func (r *TimeSlotRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&timeSlotModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
