package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
)

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	slots := slotRepo.NewMemoryRepository()
	appointments := appointmentRepo.NewMemoryRepository()

	for i := 0; i < 4; i++ {
		_, err := slots.Create(ctx, &domain.TimeSlot{
			Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			StartTime:   "09:00",
			EndTime:     "09:30",
			IsAvailable: true,
		})
		require.NoError(t, err)
	}

	statuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusApproved,
		domain.StatusApproved,
		domain.StatusDenied,
	}
	for _, status := range statuses {
		a, err := appointments.Create(ctx, &domain.NewAppointment{SlotID: "s", CustomerName: "n", CustomerEmail: "e", Reason: "r"})
		require.NoError(t, err)
		if status != domain.StatusPending {
			_, err = appointments.UpdateStatus(ctx, a.ID, status)
			require.NoError(t, err)
		}
	}

	svc := NewService(slots, appointments, simpletxmanager.NewTransactionManager(), logger.NewNop())

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalSlots)
	assert.Equal(t, 1, got.Pending)
	assert.Equal(t, 2, got.Approved)
	assert.Equal(t, 1, got.Denied)
	assert.Equal(t, 4, got.TotalAppointments)
}

func TestService_Get_Empty(t *testing.T) {
	svc := NewService(
		slotRepo.NewMemoryRepository(),
		appointmentRepo.NewMemoryRepository(),
		simpletxmanager.NewTransactionManager(),
		logger.NewNop(),
	)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Zero(t, *got)
}

type brokenSlots struct{}

func (brokenSlots) List(context.Context, domain.SlotFilter) ([]*domain.TimeSlot, error) {
	return nil, errors.New("connection reset")
}

func TestService_Get_RepositoryError(t *testing.T) {
	svc := NewService(brokenSlots{}, appointmentRepo.NewMemoryRepository(), simpletxmanager.NewTransactionManager(), logger.NewNop())

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
