package create_appointment

import "time"

// Request модель запроса на создание заявки
type Request struct {
	SlotID        string `json:"slotId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID            string
	SlotID        string
	CustomerName  string
	CustomerEmail string
	Reason        string
	Status        string
	BookedAt      time.Time
}
