package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя, поэтому при выключенных метриках
// можно передавать nil.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	StatusChanges       *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCountTotal   *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		HTTPRequestsInFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		}, []string{"service"}),

		AppointmentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Number of appointments created",
		}, []string{"service"}),

		StatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_status_changes_total",
			Help: "Number of appointment status transitions by target status",
		}, []string{"service", "status"}),

		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Number of rejected booking attempts by reason",
		}, []string{"service", "reason"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency by operation",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCountTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count_total",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
	}
}

// ServiceName возвращает значение лейбла service
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

func (m *Metrics) RecordAppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) RecordStatusChange(status string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(m.serviceName, status).Inc()
}

func (m *Metrics) RecordBookingConflict(reason string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, reason).Inc()
}
