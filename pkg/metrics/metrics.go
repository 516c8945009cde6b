package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Connection pool
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBWaitDuration     *prometheus.GaugeVec

	// Запросы к БД
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Бизнес-метрики
	JobAcceptsTotal  *prometheus.CounterVec
	JobsCreatedTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),

		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of established connections",
			},
			[]string{"service"},
		),
		DBInUseConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_in_use_connections",
				Help: "Number of connections currently in use",
			},
			[]string{"service"},
		),
		DBIdleConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_idle_connections",
				Help: "Number of idle connections",
			},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_count",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),
		DBWaitDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_duration_seconds",
				Help: "Total time blocked waiting for a new connection",
			},
			[]string{"service"},
		),

		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database operation latency",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database operations",
			},
			[]string{"service", "operation"},
		),

		JobAcceptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "job_accepts_total",
				Help: "Worker accept attempts by outcome",
			},
			[]string{"service", "outcome"},
		),
		JobsCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobs_created_total",
				Help: "Created jobs by initial status",
			},
			[]string{"service", "status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.JobAcceptsTotal,
		m.JobsCreatedTotal,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в label "service"
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveJobAccept фиксирует исход попытки принять заказ.
// На nil-приемнике ничего не делает (метрики выключены).
func (m *Metrics) ObserveJobAccept(outcome string) {
	if m == nil {
		return
	}
	m.JobAcceptsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// ObserveJobCreated фиксирует создание заказа
func (m *Metrics) ObserveJobCreated(status string) {
	if m == nil {
		return
	}
	m.JobsCreatedTotal.WithLabelValues(m.serviceName, status).Inc()
}
