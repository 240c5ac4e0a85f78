package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// TimeSlot is a fixed bookable window on a given day.
// Date is always a calendar date at 00:00 UTC.
type TimeSlot struct {
	ID          string
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// DurationMinutes returns the slot length, or 0 if the times are malformed
func (s *TimeSlot) DurationMinutes() int {
	d, err := s.StartTime.MinutesUntil(s.EndTime)
	if err != nil {
		return 0
	}
	return d
}

// SlotPatch holds the fields of a partial slot update. Nil fields are left untouched.
type SlotPatch struct {
	IsAvailable *bool
}

// IsEmpty returns true if the patch changes nothing
func (p SlotPatch) IsEmpty() bool {
	return p.IsAvailable == nil
}

// Apply returns a copy of the slot with the patch applied
func (p SlotPatch) Apply(slot TimeSlot) TimeSlot {
	if p.IsAvailable != nil {
		slot.IsAvailable = *p.IsAvailable
	}
	return slot
}

// SlotFilter narrows slot listing to an inclusive date range
type SlotFilter struct {
	From *time.Time // inclusive, nil = no lower bound
	To   *time.Time // inclusive, nil = no upper bound
}

// Matches reports whether the slot date falls inside the filter range
func (f SlotFilter) Matches(slot *TimeSlot) bool {
	if f.From != nil && slot.Date.Before(DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && slot.Date.After(DateOnly(*f.To)) {
		return false
	}
	return true
}

// DateOnly truncates t to its calendar date at 00:00 UTC, keeping the wall-clock date of t
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
