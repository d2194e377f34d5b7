package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	ReclaimerRuns     *prometheus.CounterVec
	BookingsReclaimed *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном registerer
// В тестах используется отдельный prometheus.NewRegistry(), чтобы избежать повторной регистрации
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		ReclaimerRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reclaimer_runs_total",
			Help:        "Reclamation scans by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		BookingsReclaimed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_reclaimed_total",
			Help:        "Pending bookings cancelled for missing check-in",
			ConstLabels: constLabels,
		}, []string{}),
	}
}

// ObserveReclaim фиксирует результат одного прохода reclaimer-а
// Безопасен для nil-получателя (метрики выключены)
func (m *Metrics) ObserveReclaim(reclaimed int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ReclaimerRuns.WithLabelValues("error").Inc()
		return
	}
	m.ReclaimerRuns.WithLabelValues("ok").Inc()
	m.BookingsReclaimed.WithLabelValues().Add(float64(reclaimed))
}
