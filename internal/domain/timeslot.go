package domain

import (
	"errors"
	"time"
)

type DayPeriod string

const (
	PeriodMorning   DayPeriod = "Morning"
	PeriodAfternoon DayPeriod = "Afternoon"
	PeriodEvening   DayPeriod = "Evening"
)

func ParseDayPeriod(s string) (DayPeriod, error) {
	switch DayPeriod(s) {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return DayPeriod(s), nil
	}
	return "", errors.New("unknown day period")
}

// TimeSlot is immutable once created except for the active flag.
type TimeSlot struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date" validate:"required"`
	Day       string    `json:"day"`
	DayPeriod DayPeriod `json:"day_time" validate:"required"`
	SlotName  string    `json:"slot_name" validate:"required"`
	StartTime string    `json:"start_time" validate:"required"`
	EndTime   string    `json:"end_time" validate:"required"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (t TimeSlot) TimeRange() string {
	return t.StartTime + " - " + t.EndTime
}
