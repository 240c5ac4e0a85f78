package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotAlreadyBooked возвращается, когда у слота уже есть активная заявка
	// (срабатывает частичный уникальный индекс в PostgreSQL)
	ErrSlotAlreadyBooked = errors.New("appointment.repository: slot already has an active appointment")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("appointment.repository: invalid appointment status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
