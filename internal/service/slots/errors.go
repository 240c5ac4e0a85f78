package slots

import "errors"

var (
	// ErrInvalidSchedule возвращается, когда параметры расписания не позволяют построить сетку
	ErrInvalidSchedule = errors.New("invalid slot schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
