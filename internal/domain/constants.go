package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Default schedule values: weekdays, 09:00-17:00, half-hour slots
const (
	DefaultDayStart            types.TimeString = "09:00"
	DefaultDayEnd              types.TimeString = "17:00"
	DefaultSlotDurationMinutes                  = 30
	DefaultWorkdays                             = 5
)

// Schedule validation bounds
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinWorkdays            = 1
	MaxWorkdays            = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
