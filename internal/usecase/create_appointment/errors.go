package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных.
	// Детали по полям доступны через errors.As(err, **validation.Error).
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_appointment: time slot not found")

	// ErrSlotNotAvailable возвращается, когда слот помечен как занятый
	ErrSlotNotAvailable = errors.New("create_appointment: time slot is not available")

	// ErrSlotAlreadyBooked возвращается, когда на слот уже есть активная заявка
	ErrSlotAlreadyBooked = errors.New("create_appointment: time slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// Причины конфликтов для метрики booking_conflicts_total
const (
	conflictUnavailable   = "unavailable"
	conflictAlreadyBooked = "already_booked"
	conflictRace          = "race"
)
