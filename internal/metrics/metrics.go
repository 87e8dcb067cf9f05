// Package metrics holds the prometheus collectors the client records
// outgoing API traffic into.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StatusNetworkError labels requests that never produced a response.
const StatusNetworkError = "network_error"

// Collector groups the client request metrics. Create one per registry.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

// NewCollector registers the client metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notehub",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of API requests issued by the client",
			},
			[]string{"method", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "notehub",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Latency of API requests",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "notehub",
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "API requests currently awaiting a response",
		}),
	}
}

// Start marks a request as in flight and returns a func that records its
// outcome. status is an HTTP code, or 0 when no response was received.
func (c *Collector) Start(method string) func(status int) {
	if c == nil {
		return func(int) {}
	}
	begin := time.Now()
	c.InFlight.Inc()
	return func(status int) {
		c.InFlight.Dec()
		c.RequestDuration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
		c.RequestsTotal.WithLabelValues(method, StatusLabel(status)).Inc()
	}
}

// StatusLabel maps an HTTP status to its label value.
func StatusLabel(status int) string {
	if status == 0 {
		return StatusNetworkError
	}
	return strconv.Itoa(status)
}
