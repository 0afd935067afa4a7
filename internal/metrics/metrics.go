package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "workshop_scheduler"

type Metrics struct {
	gatherer prometheus.Gatherer

	bookingCreated  *prometheus.CounterVec
	bookingRejected *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	availability    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers every collector on reg. Tests pass a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		bookingCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_created_total",
				Help:      "Appointments created, by source.",
			},
			[]string{"source"},
		),
		bookingRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_rejected_total",
				Help:      "Booking attempts rejected, by source and reason.",
			},
			[]string{"source", "reason"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "appointment_transition_total",
				Help:      "Lifecycle transitions applied, by target state.",
			},
			[]string{"to"},
		),
		availability: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "availability_requests_total",
				Help:      "Availability computations, by outcome.",
			},
			[]string{"outcome"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "availability_cache_total",
				Help:      "Availability cache lookups, by result.",
			},
			[]string{"result"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(
		m.bookingCreated,
		m.bookingRejected,
		m.transitions,
		m.availability,
		m.cacheLookups,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) BookingCreated(source string) {
	m.bookingCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) BookingRejected(source, reason string) {
	m.bookingRejected.WithLabelValues(source, reason).Inc()
}

func (m *Metrics) Transition(to string) {
	m.transitions.WithLabelValues(to).Inc()
}

func (m *Metrics) AvailabilityServed(outcome string) {
	m.availability.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// GinMiddleware records latency by route template, not raw path.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
