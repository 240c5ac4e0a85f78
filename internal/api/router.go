package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// Routes обработчики маршрутов API
type Routes struct {
	GetSlots                http.HandlerFunc
	GetAppointments         http.HandlerFunc
	GetAppointment          http.HandlerFunc
	GetAppointmentStats     http.HandlerFunc
	CreateAppointment       http.HandlerFunc
	UpdateAppointmentStatus http.HandlerFunc
}

// Options настройки роутера. Нулевые значения отключают соответствующий middleware.
type Options struct {
	Logger       middleware.Logger
	Metrics      *metrics.Metrics
	MetricsPath  string
	ServiceName  string
	CORS         middleware.CORSPolicy
	RateLimiter  *middleware.RateLimiter
	MaxBodyBytes int64
}

// NewRouter собирает роутер со всеми маршрутами и middleware
func NewRouter(routes Routes, opts Options) http.Handler {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics, opts.ServiceName))
		if opts.MetricsPath != "" {
			r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		}
	}

	r.HandleFunc("/healthz", handlers.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Слоты
	api.HandleFunc("/slots", routes.GetSlots).Methods(http.MethodGet)

	// Заявки. /stats регистрируется раньше /{id}
	api.HandleFunc("/appointments", routes.GetAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/stats", routes.GetAppointmentStats).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", routes.GetAppointment).Methods(http.MethodGet)

	// Изменяющие запросы
	writes := api.NewRoute().Subrouter()
	if opts.RateLimiter != nil {
		writes.Use(mux.MiddlewareFunc(opts.RateLimiter.Middleware()))
	}
	writes.HandleFunc("/appointments", routes.CreateAppointment).Methods(http.MethodPost)
	writes.HandleFunc("/appointments/{id}", routes.UpdateAppointmentStatus).Methods(http.MethodPatch)

	chain := []middleware.Middleware{middleware.RequestID}
	if opts.Logger != nil {
		chain = append(chain, middleware.Recovery(opts.Logger), middleware.AccessLog(opts.Logger))
	}
	chain = append(chain, middleware.CORS(withDefaults(opts.CORS)))
	if opts.MaxBodyBytes > 0 {
		chain = append(chain, middleware.BodyLimit(opts.MaxBodyBytes))
	}

	return middleware.Chain(r, chain...)
}

func withDefaults(p middleware.CORSPolicy) middleware.CORSPolicy {
	if len(p.AllowedMethods) == 0 {
		p.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	}
	if len(p.AllowedHeaders) == 0 {
		p.AllowedHeaders = []string{"Content-Type", middleware.RequestIDHeader}
	}
	if p.MaxAge == 0 {
		p.MaxAge = 10 * time.Minute
	}
	return p
}
