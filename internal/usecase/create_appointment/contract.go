package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotRepository интерфейс хранилища слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TimeSlot, error)
	ReserveIfAvailable(ctx context.Context, id string) (*domain.TimeSlot, error)
	Update(ctx context.Context, id string, patch domain.SlotPatch) (*domain.TimeSlot, error)
}

// AppointmentRepository интерфейс хранилища заявок
type AppointmentRepository interface {
	ListBySlotID(ctx context.Context, slotID string) ([]*domain.Appointment, error)
	Create(ctx context.Context, data *domain.NewAppointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бизнес-событий
type Metrics interface {
	RecordAppointmentCreated()
	RecordBookingConflict(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
