package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WeekStart возвращает понедельник недели, в которую попадает now.
// Дата берется по часам указанной зоны и приводится к 00:00 UTC.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	day := domain.DateOnly(now)
	offset := (int(day.Weekday()) + 6) % 7 // понедельник = 0
	return day.AddDate(0, 0, -offset)
}

// GenerateWeek строит сетку слотов на schedule.Workdays дней начиная с weekStart.
// Все слоты создаются доступными, ID не назначаются.
func GenerateWeek(weekStart time.Time, schedule domain.Schedule) ([]*domain.TimeSlot, error) {
	times, err := generateDayTimes(schedule.DayStart, schedule.DayEnd, schedule.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}
	if schedule.Workdays < domain.MinWorkdays || schedule.Workdays > domain.MaxWorkdays {
		return nil, fmt.Errorf("%w: workdays=%d", ErrInvalidSchedule, schedule.Workdays)
	}

	weekStart = domain.DateOnly(weekStart)
	result := make([]*domain.TimeSlot, 0, len(times)*schedule.Workdays)

	for day := 0; day < schedule.Workdays; day++ {
		date := weekStart.AddDate(0, 0, day)
		for _, start := range times {
			end, err := start.AddMinutes(schedule.SlotDurationMinutes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
			}
			result = append(result, &domain.TimeSlot{
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				IsAvailable: true,
			})
		}
	}

	return result, nil
}

// generateDayTimes генерирует времена начала слотов от dayStart до dayEnd с фиксированным шагом.
// Слот, который выходит за dayEnd, не создается.
func generateDayTimes(dayStart, dayEnd types.TimeString, step int) ([]types.TimeString, error) {
	if err := dayStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: day start: %v", ErrInvalidSchedule, err)
	}
	if err := dayEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: day end: %v", ErrInvalidSchedule, err)
	}
	if !dayStart.IsBefore(dayEnd) {
		return nil, fmt.Errorf("%w: day start %s is not before day end %s", ErrInvalidSchedule, dayStart, dayEnd)
	}
	if step < domain.MinSlotDurationMinutes || step > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: slot duration %d", ErrInvalidSchedule, step)
	}

	times := make([]types.TimeString, 0)
	current := dayStart

	for current.IsBefore(dayEnd) {
		end, err := current.AddMinutes(step)
		if err != nil {
			// конец слота перевалил за полночь
			break
		}
		if end.IsAfter(dayEnd) {
			break
		}

		times = append(times, current)
		current = end
	}

	return times, nil
}
