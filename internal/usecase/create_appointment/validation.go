package create_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/pkg/validation"
)

// normalizeRequest обрезает пробелы по краям всех полей
func normalizeRequest(req *Request) {
	req.SlotID = strings.TrimSpace(req.SlotID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.Reason = strings.TrimSpace(req.Reason)
}

// validateRequest проверяет, что после обрезки все поля непустые
func validateRequest(req *Request) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
