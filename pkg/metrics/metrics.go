package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview_scheduler"

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	service  string
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	availabilityVerdicts *prometheus.CounterVec
	reservations         *prometheus.CounterVec
	rateLimited          *prometheus.CounterVec
}

// New создаёт метрики в собственном реестре (вместе с go/process коллекторами)
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		service:  serviceName,
		registry: reg,

		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		dbQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Database query errors.",
		}, []string{"service", "operation"}),
		dbOpenConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool.",
		}, []string{"service"}),
		dbInUseConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use.",
		}, []string{"service"}),
		dbIdleConns: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_idle_connections",
			Help:      "Idle connections in the pool.",
		}, []string{"service"}),
		dbWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for.",
		}, []string{"service"}),

		availabilityVerdicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_verdicts_total",
			Help:      "Availability checks by outcome reason.",
		}, []string{"service", "reason"}),
		reservations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_total",
			Help:      "Interview reservation attempts by outcome.",
		}, []string{"service", "outcome"}),
		rateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"service", "route"}),
	}
}

// Handler HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry реестр метрик (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(serviceName, method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(serviceName, method, route).Observe(duration.Seconds())
}

// RecordDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) RecordDBQuery(serviceName, operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(serviceName string, stats sql.DBStats) {
	m.dbOpenConns.WithLabelValues(serviceName).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(serviceName).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(serviceName).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(serviceName).Set(float64(stats.WaitCount))
}

// RecordAvailabilityVerdict считает результат проверки доступности слота
func (m *Metrics) RecordAvailabilityVerdict(reason string) {
	m.availabilityVerdicts.WithLabelValues(m.service, reason).Inc()
}

// RecordReservation считает исход попытки записи на интервью
func (m *Metrics) RecordReservation(outcome string) {
	m.reservations.WithLabelValues(m.service, outcome).Inc()
}

// RecordRateLimited считает отклонённый лимитером запрос
func (m *Metrics) RecordRateLimited(route string) {
	m.rateLimited.WithLabelValues(m.service, route).Inc()
}
