// Package metrics registers the Prometheus metrics for the gate and its collaborators.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Gate metrics
	GateDecisions       *prometheus.CounterVec // outcome: authorized|unauthorized
	GateCacheHits       prometheus.Counter
	GateCacheMisses     prometheus.Counter
	GateDecisionLatency prometheus.Histogram

	// Signed payload verifier
	PayloadVerifications *prometheus.CounterVec // result: ok|bad_signature|malformed|no_secret

	// Access policy store
	AccessChecks       *prometheus.CounterVec // result: allowed|denied|error
	AccessCheckLatency prometheus.Histogram

	// Catalog and upload
	CatalogWrites *prometheus.CounterVec // op: showcase_create, topic_update, ...
	ImageUploads  *prometheus.CounterVec // result: ok|rejected|error
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		GateDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrina_gate_decisions_total",
			Help: "Terminal gate decisions by outcome",
		}, []string{"outcome"}),
		GateCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitrina_gate_cache_hits_total",
			Help: "Session cache entries honored without a policy store call",
		}),
		GateCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitrina_gate_cache_misses_total",
			Help: "Gate runs that required a policy store round trip",
		}),
		GateDecisionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vitrina_gate_decision_latency_seconds",
			Help:    "Latency from gate entry to terminal decision",
			Buckets: prometheus.DefBuckets,
		}),
		PayloadVerifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrina_payload_verifications_total",
			Help: "Init-data signature verification attempts by result",
		}, []string{"result"}),
		AccessChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrina_access_checks_total",
			Help: "Allow-list lookups by result",
		}, []string{"result"}),
		AccessCheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vitrina_access_check_latency_seconds",
			Help:    "Latency of allow-list lookups",
			Buckets: prometheus.DefBuckets,
		}),
		CatalogWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrina_catalog_writes_total",
			Help: "Create, update, and delete operations on catalog entities",
		}, []string{"op"}),
		ImageUploads: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vitrina_image_uploads_total",
			Help: "Image upload attempts by result",
		}, []string{"result"}),
	}
}
