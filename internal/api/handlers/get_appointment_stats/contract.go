package get_appointment_stats

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/stats/models"
)

type StatsService interface {
	Get(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
