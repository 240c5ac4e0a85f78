package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SlotID        string `json:"slotId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Reason        string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		SlotID:        r.SlotID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *models.AppointmentResponse {
	return &models.AppointmentResponse{
		ID:            resp.ID,
		SlotID:        resp.SlotID,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		Reason:        resp.Reason,
		Status:        resp.Status,
		BookedAt:      resp.BookedAt.UTC().Format(time.RFC3339),
	}
}
