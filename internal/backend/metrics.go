package backend

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

type clientMetrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// WithMetrics registers request counters and latency histograms on reg.
// Collectors already registered by another client are reused.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg == nil {
			return
		}
		m := &clientMetrics{
			requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "rosterboard",
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Count of requests issued to the roster API",
			}, []string{"method", "route", "status"}),
			requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "rosterboard",
				Subsystem: "backend",
				Name:      "request_duration_seconds",
				Help:      "Latency distribution of roster API requests",
				Buckets:   histogramBuckets,
			}, []string{"method", "route", "status"}),
		}
		if err := reg.Register(m.requestTotal); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					m.requestTotal = existing
				}
			}
		}
		if err := reg.Register(m.requestDuration); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
					m.requestDuration = existing
				}
			}
		}
		c.metrics = m
	}
}

func (m *clientMetrics) observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requestTotal.WithLabelValues(method, route, code).Inc()
	m.requestDuration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}
