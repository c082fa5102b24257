package verification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the verification engine.
type Metrics struct {
	Decisions *prometheus.CounterVec
	Latency   prometheus.Histogram
}

// NewMetrics creates and registers verification metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "proofgate_verifications_total",
			Help: "Verification decisions, labeled by reason",
		}, []string{"reason"}),
		Latency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "proofgate_verification_latency_seconds",
			Help:    "Latency of verification checks in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
