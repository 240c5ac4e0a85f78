package update_appointment_status

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	updateStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(appointmentID string) *updateStatus.Request {
	return &updateStatus.Request{
		AppointmentID: appointmentID,
		Status:        r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *models.AppointmentResponse {
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
