package apisvc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// request outcomes
const (
	outcomeOK           = "ok"
	outcomeHTTPError    = "http_error"
	outcomeNetworkError = "network_error"
)

// Metrics counts and times the requests sent to the API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schooladmin",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Requests sent to the API, by resource, operation and outcome.",
		}, []string{"resource", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schooladmin",
			Subsystem: "api_client",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of the requests sent to the API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "op"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(resource, op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(resource, op, outcome).Inc()
	m.duration.WithLabelValues(resource, op).Observe(elapsed.Seconds())
}
