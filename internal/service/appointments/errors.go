package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
