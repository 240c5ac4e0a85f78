package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case для создания заявки на слот
type UseCase struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания заявки.
// Проверка слота, резервирование и создание заявки выполняются одной сериализуемой транзакцией.
// Слот резервируется атомарно (compare-and-swap) до создания заявки; если создать заявку
// не удалось, резерв снимается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация и валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: slot=%s, customer=%s", req.SlotID, req.CustomerEmail)

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateAppointment: slot id=%s not found", req.SlotID)
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 3. Проверяем флаг доступности
		if !slot.IsAvailable {
			uc.logger.Warn("CreateAppointment: slot id=%s is not available", req.SlotID)
			uc.metrics.RecordBookingConflict(conflictUnavailable)
			return ErrSlotNotAvailable
		}

		// 4. Проверяем, что на слот нет активной заявки (флаг мог устареть)
		existing, err := uc.appointmentRepo.ListBySlotID(txCtx, req.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to list slot appointments: %w", ErrInternal, err)
		}
		for _, a := range existing {
			if a.IsActive() {
				uc.logger.Warn("CreateAppointment: slot id=%s already booked by appointment id=%s", req.SlotID, a.ID)
				uc.metrics.RecordBookingConflict(conflictAlreadyBooked)
				return ErrSlotAlreadyBooked
			}
		}

		// 5. Резервируем слот: isAvailable true -> false одной операцией
		if _, err := uc.slotRepo.ReserveIfAvailable(txCtx, req.SlotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotAvailable):
				uc.logger.Warn("CreateAppointment: slot id=%s was reserved concurrently", req.SlotID)
				uc.metrics.RecordBookingConflict(conflictRace)
				return ErrSlotNotAvailable
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			default:
				return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
			}
		}

		// 6. Создаем заявку (статус pending)
		created, err := uc.appointmentRepo.Create(txCtx, &domain.NewAppointment{
			SlotID:        req.SlotID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			Reason:        req.Reason,
		})
		if err != nil {
			uc.releaseSlot(txCtx, req.SlotID)

			if errors.Is(err, appointmentRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("CreateAppointment: slot id=%s already has an active appointment", req.SlotID)
				uc.metrics.RecordBookingConflict(conflictAlreadyBooked)
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: slot=%s: %v", req.SlotID, err)
		if !errors.Is(err, ErrInternal) {
			// ошибки begin/commit от менеджера транзакций
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.RecordAppointmentCreated()
	uc.logger.Info("CreateAppointment: created appointment id=%s for slot=%s", result.ID, result.SlotID)

	return toResponse(result), nil
}

// releaseSlot снимает резерв со слота после неудачного создания заявки.
// В PostgreSQL откат транзакции вернет слот и без этого вызова.
func (uc *UseCase) releaseSlot(ctx context.Context, slotID string) {
	if _, err := uc.slotRepo.Update(ctx, slotID, domain.SlotPatch{IsAvailable: ptr.Ptr(true)}); err != nil {
		uc.logger.Warn("CreateAppointment: failed to release slot id=%s: %v", slotID, err)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrSlotNotAvailable) ||
		errors.Is(err, ErrSlotAlreadyBooked)
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:            a.ID,
		SlotID:        a.SlotID,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		Reason:        a.Reason,
		Status:        string(a.Status),
		BookedAt:      a.BookedAt,
	}
}
