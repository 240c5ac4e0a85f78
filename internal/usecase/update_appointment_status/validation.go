package update_appointment_status

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/validation"
)

// validateRequest проверяет входные данные и возвращает целевой статус
func validateRequest(req *Request) (domain.AppointmentStatus, error) {
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.Status = strings.TrimSpace(req.Status)

	if err := validation.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return status, nil
}
