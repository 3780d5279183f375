// Package metrics provides Prometheus metrics for the venuescout recommender.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the venuescout service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	recommendationsServed prometheus.Counter
	recommendationsEmpty  prometheus.Counter
	candidatesDropped     prometheus.Counter
	rankingScore          prometheus.Histogram

	// Pipeline latency metrics
	retrievalLatency prometheus.Histogram
	agentLatency     prometheus.Histogram
	rankingLatency   prometheus.Histogram

	// Explanation collaborator metrics
	explanationRequests prometheus.Counter
	explanationFailures prometheus.Counter
	explanationLatency  prometheus.Histogram

	// Corpus gauges
	corpusVenues   prometheus.Gauge
	corpusRequests prometheus.Gauge
	corpusEvents   prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "venuescout",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recommendationsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Total number of recommendation requests answered successfully",
	})

	m.recommendationsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_empty_total",
		Help:      "Total number of recommendation requests that produced no usable candidates",
	})

	m.candidatesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_dropped_total",
		Help:      "Total number of retrieval candidates dropped because their venue could not be resolved",
	})

	m.rankingScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_score",
		Help:      "Distribution of hybrid ranking scores of served recommendations",
		Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.retrievalLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "retrieval_latency_milliseconds",
		Help:      "Similarity retrieval latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.agentLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "agent_scoring_latency_milliseconds",
		Help:      "Combined criterion-agent scoring latency per candidate in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_latency_milliseconds",
		Help:      "End-to-end hybrid ranking latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.explanationRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "explanation_requests_total",
		Help:      "Total number of explanation collaborator calls",
	})

	m.explanationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "explanation_failures_total",
		Help:      "Total number of explanation collaborator calls degraded to a placeholder",
	})

	m.explanationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "explanation_latency_milliseconds",
		Help:      "Explanation collaborator latency in milliseconds",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	m.corpusVenues = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_venues",
		Help:      "Number of venues loaded at startup",
	})

	m.corpusRequests = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_requests",
		Help:      "Number of pending event requests loaded at startup",
	})

	m.corpusEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_historical_events",
		Help:      "Number of historical events indexed at startup",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordRecommendationServed increments the served recommendations counter.
func RecordRecommendationServed() {
	globalManager.recommendationsServed.Inc()
}

// RecordRecommendationEmpty increments the no-usable-candidates counter.
func RecordRecommendationEmpty() {
	globalManager.recommendationsEmpty.Inc()
}

// RecordCandidateDropped increments the unresolved-venue drop counter.
func RecordCandidateDropped() {
	globalManager.candidatesDropped.Inc()
}

// ObserveRankingScore records a served hybrid ranking score.
func ObserveRankingScore(score float64) {
	globalManager.rankingScore.Observe(score)
}

// RecordRetrievalLatency records retrieval latency in milliseconds.
func RecordRetrievalLatency(latencyMs float64) {
	globalManager.retrievalLatency.Observe(latencyMs)
}

// RecordAgentLatency records per-candidate agent scoring latency in milliseconds.
func RecordAgentLatency(latencyMs float64) {
	globalManager.agentLatency.Observe(latencyMs)
}

// RecordRankingLatency records end-to-end ranking latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingLatency.Observe(latencyMs)
}

// RecordExplanationRequest increments the explanation request counter.
func RecordExplanationRequest() {
	globalManager.explanationRequests.Inc()
}

// RecordExplanationFailure increments the explanation failure counter.
func RecordExplanationFailure() {
	globalManager.explanationFailures.Inc()
}

// RecordExplanationLatency records explanation collaborator latency in milliseconds.
func RecordExplanationLatency(latencyMs float64) {
	globalManager.explanationLatency.Observe(latencyMs)
}

// UpdateCorpusSizes sets the corpus gauges after a successful startup load.
func UpdateCorpusSizes(venues, requests, events int) {
	globalManager.corpusVenues.Set(float64(venues))
	globalManager.corpusRequests.Set(float64(requests))
	globalManager.corpusEvents.Set(float64(events))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
