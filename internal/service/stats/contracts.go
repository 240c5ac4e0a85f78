package stats

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotRepository интерфейс хранилища слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
}

// AppointmentRepository интерфейс хранилища заявок
type AppointmentRepository interface {
	List(ctx context.Context) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
