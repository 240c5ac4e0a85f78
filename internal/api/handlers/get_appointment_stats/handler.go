package get_appointment_stats

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgFailed = "Failed to fetch statistics"

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/appointments/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments/stats - Failed to compute stats: error=%v", err)
		handlers.RespondInternalError(w, msgFailed)
		return
	}

	h.logger.Info("GET /appointments/stats - Stats computed: total_slots=%d, total_appointments=%d",
		stats.TotalSlots, stats.TotalAppointments)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
