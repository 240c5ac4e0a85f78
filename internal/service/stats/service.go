package stats

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/stats/models"
)

// Service считает сводку по текущему состоянию хранилищ. Ничего не кэширует.
type Service struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Get считает количество слотов и заявок по статусам.
// Оба списка читаются в одной read-only транзакции, чтобы счетчики были согласованы.
func (s *Service) Get(ctx context.Context) (*models.StatsResponse, error) {
	var (
		slots        []*domain.TimeSlot
		appointments []*domain.Appointment
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		slots, err = s.slotRepo.List(ctx, domain.SlotFilter{})
		if err != nil {
			return fmt.Errorf("%w: Get - list slots: %v", ErrInternal, err)
		}
		appointments, err = s.appointmentRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("%w: Get - list appointments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Get: %v", err)
		return nil, err
	}

	return models.FromDomainStats(domain.ComputeStats(slots, appointments)), nil
}
