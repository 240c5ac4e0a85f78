package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidData      = "Invalid appointment data"
	msgSlotNotFound     = "Time slot not found"
	msgSlotNotAvailable = "Time slot is not available"
	msgSlotBooked       = "Time slot is already booked"
	msgFailed           = "Failed to create appointment"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, msgInvalidData, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondValidationError(w, msgInvalidData, err)

		case errors.Is(err, createAppointment.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: slot_id=%s", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: slot_id=%s", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /appointments - Slot already booked: slot_id=%s", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotBooked)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, slot_id=%s",
		result.ID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
