package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	updateStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
)

const (
	msgInvalidData       = "Invalid status data"
	msgNotFound          = "Appointment not found"
	msgInvalidTransition = "Appointment has already been decided or the status is not a decision"
	msgFailed            = "Failed to update appointment status"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, msgInvalidData, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Validation failed: appointment_id=%s, error=%v", id, err)
			handlers.RespondValidationError(w, msgInvalidData, err)

		case errors.Is(err, updateStatus.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id} - Invalid transition: appointment_id=%s, status=%s", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update status: appointment_id=%s, error=%v", id, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Status updated successfully: appointment_id=%s, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
