package app

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotStore хранилище слотов (in-memory или PostgreSQL)
type SlotStore interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*domain.TimeSlot, error)
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Update(ctx context.Context, id string, patch domain.SlotPatch) (*domain.TimeSlot, error)
	ReserveIfAvailable(ctx context.Context, id string) (*domain.TimeSlot, error)
}

// AppointmentStore хранилище заявок (in-memory или PostgreSQL)
type AppointmentStore interface {
	List(ctx context.Context) ([]*domain.Appointment, error)
	ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListBySlotID(ctx context.Context, slotID string) ([]*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Create(ctx context.Context, data *domain.NewAppointment) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
}

// TransactionManager менеджер транзакций выбранного хранилища
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
