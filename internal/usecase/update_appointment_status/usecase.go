package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case для рассмотрения заявки администратором
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute переводит заявку из pending в approved или denied.
// При отказе слот заявки снова становится доступным в той же транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment=%s, status=%s", req.AppointmentID, target)

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем заявку
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2. Рассмотреть можно только pending заявку и только в approved/denied
		if !current.CanTransitionTo(target) {
			uc.logger.Warn("UpdateAppointmentStatus: appointment id=%s cannot move from %s to %s",
				current.ID, current.Status, target)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
		}

		// 3. Меняем статус
		updated, err := uc.appointmentRepo.UpdateStatus(txCtx, current.ID, target)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		// 4. Отказ освобождает слот
		if target == domain.StatusDenied {
			if err := uc.freeSlot(txCtx, current); err != nil {
				return err
			}
		}

		result = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		uc.logger.Error("UpdateAppointmentStatus: appointment=%s: %v", req.AppointmentID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.RecordStatusChange(string(result.Status))
	uc.logger.Info("UpdateAppointmentStatus: appointment id=%s is now %s", result.ID, result.Status)

	return toResponse(result), nil
}

// freeSlot помечает слот заявки доступным.
// Если слота нет, заявка все равно считается отклоненной.
// При другой ошибке статус заявки возвращается к прежнему.
func (uc *UseCase) freeSlot(ctx context.Context, a *domain.Appointment) error {
	_, err := uc.slotRepo.Update(ctx, a.SlotID, domain.SlotPatch{IsAvailable: ptr.Ptr(true)})
	if err == nil {
		return nil
	}
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		uc.logger.Warn("UpdateAppointmentStatus: slot id=%s of appointment id=%s not found, nothing to free",
			a.SlotID, a.ID)
		return nil
	}

	if _, restoreErr := uc.appointmentRepo.UpdateStatus(ctx, a.ID, a.Status); restoreErr != nil {
		uc.logger.Warn("UpdateAppointmentStatus: failed to restore status of appointment id=%s: %v", a.ID, restoreErr)
	}
	return fmt.Errorf("%w: failed to free slot id=%s: %w", ErrInternal, a.SlotID, err)
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
