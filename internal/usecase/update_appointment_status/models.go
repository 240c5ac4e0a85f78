package update_appointment_status

import "time"

// Request модель запроса на смену статуса заявки
type Request struct {
	AppointmentID string `json:"id" validate:"required"`
	// pending проходит проверку схемы как известный статус; перевод в pending отклоняет use case (ErrInvalidTransition)
	Status        string `json:"status" validate:"required,oneof=pending approved denied"`
}

// Response модель ответа с обновленной заявкой
type Response struct {
	ID            string
	SlotID        string
	CustomerName  string
	CustomerEmail string
	Reason        string
	Status        string
	BookedAt      time.Time
}
