package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the certificate registry.
type Metrics struct {
	CredentialsAnchored prometheus.Counter
	DuplicatePuts       prometheus.Counter
	Revocations         *prometheus.CounterVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	ReadModelSyncErrors prometheus.Counter
	PutLatency          prometheus.Histogram
}

// New creates and registers registry metrics.
func New() *Metrics {
	return &Metrics{
		CredentialsAnchored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "proofgate_credentials_anchored_total",
			Help: "Total number of credentials committed to the registry",
		}),
		DuplicatePuts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "proofgate_registry_duplicate_puts_total",
			Help: "Total number of puts rejected as duplicates (idempotent retries)",
		}),
		Revocations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "proofgate_revocations_total",
			Help: "Total number of revocations, labeled by outcome",
		}, []string{"outcome"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "proofgate_registry_cache_hits_total",
			Help: "Registry read cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "proofgate_registry_cache_misses_total",
			Help: "Registry read cache misses",
		}),
		ReadModelSyncErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "proofgate_readmodel_sync_errors_total",
			Help: "Failures mirroring ledger state into the local read model",
		}),
		PutLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "proofgate_registry_put_latency_seconds",
			Help:    "Latency of registry put operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
