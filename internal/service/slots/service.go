package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

// Service сервис для работы со слотами
type Service struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	schedule domain.Schedule,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		txManager:    txManager,
		schedule:     schedule,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List возвращает все слоты, упорядоченные по дате и времени начала.
// Если date задан, возвращаются только слоты этого дня.
func (s *Service) List(ctx context.Context, date *time.Time) ([]models.SlotResponse, error) {
	filter := domain.SlotFilter{}
	if date != nil {
		day := domain.DateOnly(*date)
		filter.From = &day
		filter.To = &day
		s.logger.Info("List: fetching slots for date=%s", day.Format(domain.DateFormat))
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// SeedWeek создает сетку слотов на текущую неделю.
// Если на эту неделю слоты уже есть, ничего не делает. Возвращает число созданных слотов.
func (s *Service) SeedWeek(ctx context.Context) (int, error) {
	weekStart := WeekStart(s.timeProvider.Now(), s.schedule.Location)

	grid, err := GenerateWeek(weekStart, s.schedule)
	if err != nil {
		s.logger.Error("SeedWeek: invalid schedule: %v", err)
		return 0, err
	}

	weekEnd := weekStart.AddDate(0, 0, s.schedule.Workdays-1)
	created := 0

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.slotRepo.List(ctx, domain.SlotFilter{From: &weekStart, To: &weekEnd})
		if err != nil {
			return fmt.Errorf("%w: SeedWeek - list existing slots: %v", ErrInternal, err)
		}
		if len(existing) > 0 {
			s.logger.Info("SeedWeek: week of %s already has %d slots, skipping",
				weekStart.Format(domain.DateFormat), len(existing))
			return nil
		}

		for _, slot := range grid {
			if _, err := s.slotRepo.Create(ctx, slot); err != nil {
				return fmt.Errorf("%w: SeedWeek - create slot %s %s: %v",
					ErrInternal, slot.Date.Format(domain.DateFormat), slot.StartTime, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SeedWeek: %v", err)
		return 0, err
	}

	if created > 0 {
		s.logger.Info("SeedWeek: created %d slots for week of %s", created, weekStart.Format(domain.DateFormat))
	}
	return created, nil
}
