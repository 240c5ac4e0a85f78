package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAppointmentStatsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment_stats"
	getAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointments"
	getSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_slots"
	updateStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	slotsService "github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	statsService "github.com/m04kA/SMC-AppointmentService/internal/service/stats"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	updateStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// App собранное приложение: хранилища, сервисы и HTTP обработчик
type App struct {
	Handler http.Handler

	slots   *slotsService.Service
	storage *storage
	logger  Logger
}

// New собирает приложение по конфигурации.
// metricsCollector может быть nil, если метрики выключены.
func New(
	ctx context.Context,
	cfg *config.Config,
	log Logger,
	metricsCollector *metrics.Metrics,
	timeProvider TimeProvider,
) (*App, error) {
	schedule, err := cfg.Schedule.Build()
	if err != nil {
		return nil, err
	}

	// Ограничение частоты изменяющих запросов
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter, err = middleware.NewRateLimiter(middleware.RateLimitPolicy{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			Methods:           []string{http.MethodPost, http.MethodPatch},
			TrustedProxies:    cfg.RateLimit.TrustedProxies,
			IdleTTL:           config.Duration(cfg.RateLimit.IdleTTL),
		}, log)
		if err != nil {
			return nil, fmt.Errorf("app: rate limiter: %w", err)
		}
	}

	// Хранилище
	var store *storage
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		store, err = newPostgresStorage(ctx, cfg, metricsCollector, log)
		if err != nil {
			return nil, fmt.Errorf("app: postgres storage: %w", err)
		}
	default:
		store = newMemoryStorage()
		log.Info("Using in-memory storage")
	}

	// Сервисы
	slotSvc := slotsService.NewService(store.slots, store.txManager, schedule, timeProvider, log)
	appointmentSvc := appointmentsService.NewService(store.appointments, log)
	statsSvc := statsService.NewService(store.slots, store.appointments, store.txManager, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.slots,
		store.appointments,
		store.txManager,
		metricsCollector,
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		store.appointments,
		store.slots,
		store.txManager,
		metricsCollector,
		log,
	)

	// Handlers
	routes := api.Routes{
		GetSlots:                getSlotsHandler.NewHandler(slotSvc, log).Handle,
		GetAppointments:         getAppointmentsHandler.NewHandler(appointmentSvc, log).Handle,
		GetAppointment:          getAppointmentHandler.NewHandler(appointmentSvc, log).Handle,
		GetAppointmentStats:     getAppointmentStatsHandler.NewHandler(statsSvc, log).Handle,
		CreateAppointment:       createAppointmentHandler.NewHandler(createAppointmentUseCase, log).Handle,
		UpdateAppointmentStatus: updateStatusHandler.NewHandler(updateStatusUseCase, log).Handle,
	}

	opts := api.Options{
		Logger:       log,
		CORS:         middleware.CORSPolicy{AllowedOrigins: cfg.CORS.AllowedOrigins},
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}
	if metricsCollector != nil {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.ServiceName = cfg.Metrics.ServiceName
	}
	opts.RateLimiter = rateLimiter

	return &App{
		Handler: api.NewRouter(routes, opts),
		slots:   slotSvc,
		storage: store,
		logger:  log,
	}, nil
}

// SeedWeek создает слоты на текущую неделю, если их еще нет
func (a *App) SeedWeek(ctx context.Context) error {
	created, err := a.slots.SeedWeek(ctx)
	if err != nil {
		return fmt.Errorf("app: seed week: %w", err)
	}
	if created == 0 {
		a.logger.Info("Slots for the current week already exist")
	}
	return nil
}

// Close освобождает ресурсы хранилища
func (a *App) Close() error {
	return a.storage.close()
}
