package get_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgFailed = "Failed to fetch appointments"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/appointments
// Query params: status (опционально, "all" или статус заявки)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	result, err := h.service.List(r.Context(), status)
	if err != nil {
		h.logger.Error("GET /appointments - Failed to fetch appointments: status=%q, error=%v", status, err)
		handlers.RespondInternalError(w, msgFailed)
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: status=%q, count=%d", status, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
