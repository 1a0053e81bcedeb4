package workflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts sub-resource syncs and times whole operations.
type Metrics struct {
	ResourceSyncs     *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	MirrorFailures    prometheus.Counter
}

// NewMetrics registers the workflow metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ResourceSyncs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esgsync_resource_syncs_total",
			Help: "Sub-resource sync outcomes by operation, resource and status",
		}, []string{"operation", "resource", "status"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esgsync_operation_duration_seconds",
			Help:    "Duration of save-draft and submit operations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		MirrorFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "esgsync_draft_mirror_failures_total",
			Help: "Draft mirror writes that failed after a sync",
		}),
	}
}

func (m *Metrics) observeResource(operation, resource string, status Status) {
	if m == nil {
		return
	}
	m.ResourceSyncs.WithLabelValues(operation, resource, string(status)).Inc()
}

func (m *Metrics) observeOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) incMirrorFailure() {
	if m == nil {
		return
	}
	m.MirrorFailures.Inc()
}
