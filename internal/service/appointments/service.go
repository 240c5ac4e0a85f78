package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для чтения заявок
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// List возвращает заявки в порядке создания.
// Пустой статус или "all" возвращает все заявки, иначе только заявки с этим статусом.
// Для неизвестного статуса результат пустой.
func (s *Service) List(ctx context.Context, status string) ([]*models.AppointmentResponse, error) {
	status = strings.TrimSpace(status)

	var (
		list []*domain.Appointment
		err  error
	)

	if status == "" || status == models.StatusAll {
		list, err = s.appointmentRepo.List(ctx)
	} else {
		domainStatus := domain.AppointmentStatus(status)
		if !domainStatus.IsValid() {
			// заявок с таким статусом быть не может
			s.logger.Info("List: unknown status filter=%q, returning empty list", status)
			return models.FromDomainAppointmentList(nil), nil
		}
		list, err = s.appointmentRepo.ListByStatus(ctx, domainStatus)
	}
	if err != nil {
		s.logger.Error("List: repository error for status=%q: %v", status, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(a), nil
}
