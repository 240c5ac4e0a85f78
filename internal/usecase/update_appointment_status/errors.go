package update_appointment_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrInvalidTransition возвращается, когда заявка уже рассмотрена
	// или целевой статус не является решением (approved/denied)
	ErrInvalidTransition = errors.New("update_appointment_status: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)
