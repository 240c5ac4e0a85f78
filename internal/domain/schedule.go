package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Schedule describes the weekly slot grid seeded at startup
type Schedule struct {
	DayStart            types.TimeString
	DayEnd              types.TimeString
	SlotDurationMinutes int
	Workdays            int // consecutive days starting Monday
	Location            *time.Location
}

// DefaultSchedule returns the Monday-Friday 09:00-17:00 half-hour grid
func DefaultSchedule() Schedule {
	return Schedule{
		DayStart:            DefaultDayStart,
		DayEnd:              DefaultDayEnd,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		Workdays:            DefaultWorkdays,
		Location:            time.Local,
	}
}

// SlotsPerDay returns the number of slots generated for one working day
func (s Schedule) SlotsPerDay() int {
	total, err := s.DayStart.MinutesUntil(s.DayEnd)
	if err != nil || s.SlotDurationMinutes <= 0 || total <= 0 {
		return 0
	}
	return total / s.SlotDurationMinutes
}
