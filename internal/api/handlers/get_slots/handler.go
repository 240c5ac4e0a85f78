package get_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgInvalidDate = "Invalid date, expected YYYY-MM-DD"
	msgFailed      = "Failed to fetch time slots"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/slots
// Query params: date (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	slots, err := h.service.List(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /slots - Failed to fetch slots: error=%v", err)
		handlers.RespondInternalError(w, msgFailed)
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: count=%d", len(slots))
	handlers.RespondJSON(w, http.StatusOK, slots)
}
