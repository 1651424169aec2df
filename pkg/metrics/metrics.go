package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbOpenConnections   *prometheus.GaugeVec
	bookingsCreated     *prometheus.CounterVec
	recurringSkipped    *prometheus.CounterVec
	bookingsCancelled   *prometheus.CounterVec
	slotClaimConflicts  *prometheus.CounterVec
	slotCacheRequests   *prometheus.CounterVec

	serviceName string
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном registerer
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"service", "method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		dbOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of open database connections.",
			},
			[]string{"service"},
		),
		bookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_created_total",
				Help: "Bookings created, by kind (primary, recurring).",
			},
			[]string{"service", "kind"},
		),
		recurringSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recurring_occurrences_not_created_total",
				Help: "Recurring occurrences not created, by reason (conflict, failed).",
			},
			[]string{"service", "reason"},
		),
		bookingsCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_cancelled_total",
				Help: "Bookings cancelled, by mode (single, future).",
			},
			[]string{"service", "mode"},
		),
		slotClaimConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_claim_conflicts_total",
				Help: "Manual slot claims rejected because the slot was already taken.",
			},
			[]string{"service"},
		),
		slotCacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_cache_requests_total",
				Help: "Computed slot cache lookups, by result (hit, miss, error).",
			},
			[]string{"service", "result"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.bookingsCreated,
		m.recurringSkipped,
		m.bookingsCancelled,
		m.slotClaimConflicts,
		m.slotCacheRequests,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

func (m *Metrics) SetDBOpenConnections(n int) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(n))
}

func (m *Metrics) IncBookingsCreated(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bookingsCreated.WithLabelValues(m.serviceName, kind).Add(float64(n))
}

func (m *Metrics) IncRecurringNotCreated(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recurringSkipped.WithLabelValues(m.serviceName, reason).Add(float64(n))
}

func (m *Metrics) IncBookingsCancelled(mode string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bookingsCancelled.WithLabelValues(m.serviceName, mode).Add(float64(n))
}

func (m *Metrics) IncSlotClaimConflict() {
	if m == nil {
		return
	}
	m.slotClaimConflicts.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) IncSlotCache(result string) {
	if m == nil {
		return
	}
	m.slotCacheRequests.WithLabelValues(m.serviceName, result).Inc()
}
