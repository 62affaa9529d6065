// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Chain client metrics
	RPCCallLatency    *prometheus.HistogramVec
	RPCCallErrors     *prometheus.CounterVec
	EndpointRotations prometheus.Counter

	// Analysis metrics
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	AnalyzerDegraded    *prometheus.CounterVec
	PriceLookupLatency  prometheus.Histogram
	PriceLookupFailures prometheus.Counter

	// Report store metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	StoreErrors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_exposure"
	}

	return &Metrics{
		RPCCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_call_latency_seconds",
			Help:      "Solana RPC call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		RPCCallErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_call_errors_total",
			Help:      "Total number of failed RPC call attempts by method",
		}, []string{"method"}),
		EndpointRotations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "endpoint_rotations_total",
			Help:      "Total number of RPC endpoint rotations after failed attempts",
		}),

		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of wallet analyses by outcome",
		}, []string{"status"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Wallet analysis duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		AnalyzerDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "analyzer_degraded_total",
			Help:      "Total number of optional analyzers that fell back to defaults",
		}, []string{"analyzer"}),
		PriceLookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "prices",
			Name:      "lookup_latency_seconds",
			Help:      "Price feed lookup latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		PriceLookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prices",
			Name:      "lookup_failures_total",
			Help:      "Total number of failed price feed lookups",
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "cache_hits_total",
			Help:      "Total number of reports served from the store",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "cache_misses_total",
			Help:      "Total number of store lookups with no usable report",
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Total number of report store errors by operation",
		}, []string{"operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ClientObserver adapts Metrics to the chain client's instrumentation hook.
type ClientObserver struct {
	metrics *Metrics
}

// NewClientObserver creates an observer backed by m.
func NewClientObserver(m *Metrics) *ClientObserver {
	return &ClientObserver{metrics: m}
}

// ObserveRPCCall records one RPC attempt.
func (o *ClientObserver) ObserveRPCCall(method string, duration time.Duration, err error) {
	o.metrics.RPCCallLatency.WithLabelValues(method).Observe(duration.Seconds())
	if err != nil {
		o.metrics.RPCCallErrors.WithLabelValues(method).Inc()
	}
}

// EndpointRotated records a failover rotation.
func (o *ClientObserver) EndpointRotated(string) {
	o.metrics.EndpointRotations.Inc()
}

// RecordAnalysis records one completed or failed analysis run.
func (m *Metrics) RecordAnalysis(status string, duration time.Duration) {
	m.AnalysesTotal.WithLabelValues(status).Inc()
	m.AnalysisDuration.Observe(duration.Seconds())
}

// RecordDegraded records an optional analyzer falling back to its default.
func (m *Metrics) RecordDegraded(analyzer string) {
	m.AnalyzerDegraded.WithLabelValues(analyzer).Inc()
}

// RecordPriceLookup records one price feed lookup.
func (m *Metrics) RecordPriceLookup(duration time.Duration, err error) {
	m.PriceLookupLatency.Observe(duration.Seconds())
	if err != nil {
		m.PriceLookupFailures.Inc()
	}
}

// RecordStoreError records a failed report store operation.
func (m *Metrics) RecordStoreError(operation string) {
	m.StoreErrors.WithLabelValues(operation).Inc()
}

// RecordCacheLookup records a store lookup outcome.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}
