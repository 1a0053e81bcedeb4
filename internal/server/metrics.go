package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the HTTP request metrics.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the HTTP metrics with reg, reusing collectors that an
// earlier Server already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esgsync_http_requests_total",
			Help: "Preview API requests by route, method and status code",
		}, []string{"route", "method", "code"})),
		Duration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esgsync_http_request_duration_seconds",
			Help:    "Preview API request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
