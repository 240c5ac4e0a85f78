package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// StatusAll значение фильтра, при котором возвращаются все заявки
const StatusAll = "all"

// AppointmentResponse модель заявки для ответа API
type AppointmentResponse struct {
	ID            string `json:"id"`
	SlotID        string `json:"slotId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	BookedAt      string `json:"bookedAt"`
}

// FromDomainAppointment конвертирует доменную заявку в модель ответа
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            a.ID,
		SlotID:        a.SlotID,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		Reason:        a.Reason,
		Status:        string(a.Status),
		BookedAt:      a.BookedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список заявок. Пустой список сериализуется как [].
func FromDomainAppointmentList(list []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAppointment(a))
	}
	return result
}
