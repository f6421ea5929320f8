package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the service's Prometheus metrics.
type Recorder struct {
	fetches   *prometheus.CounterVec
	cacheOps  *prometheus.CounterVec
	fallbacks prometheus.Counter
	anomalies *prometheus.CounterVec
	lastPrice *prometheus.GaugeVec
	latency   *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantlab_provider_fetch_total",
				Help: "Upstream provider fetches by outcome",
			},
			[]string{"provider", "outcome"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantlab_snapshot_cache_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),
		fallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "quantlab_fallback_total",
				Help: "Responses served from the static fallback sample",
			},
		),
		anomalies: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantlab_anomalies_detected_total",
				Help: "Anomalies emitted by detection passes",
			},
			[]string{"type", "severity"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quantlab_last_price",
				Help: "Last fetched price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quantlab_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records one upstream fetch attempt.
func (r *Recorder) RecordFetch(provider, outcome string) {
	r.fetches.WithLabelValues(provider, outcome).Inc()
}

// RecordCache records a snapshot cache lookup result ("hit" or "miss").
func (r *Recorder) RecordCache(result string) {
	r.cacheOps.WithLabelValues(result).Inc()
}

// RecordFallback records a response served from static sample data.
func (r *Recorder) RecordFallback() {
	r.fallbacks.Inc()
}

// RecordAnomaly records one emitted anomaly.
func (r *Recorder) RecordAnomaly(kind, severity string) {
	r.anomalies.WithLabelValues(kind, severity).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
