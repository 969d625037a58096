// Package telemetry records request and fallback metrics for Prometheus.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Result sources.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
	SourceCache    = "cache"
	SourceRules    = "rules"
)

// Metrics groups the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests          *prometheus.CounterVec
	generatorFailures *prometheus.CounterVec
	completeness      prometheus.Histogram
}

// NewMetrics registers the service collectors, plus Go and process
// collectors, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labchain",
			Name:      "requests_total",
			Help:      "Handled protocol operations by result source.",
		}, []string{"operation", "source"}),
		generatorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labchain",
			Name:      "generator_failures_total",
			Help:      "Model calls that failed and fell back to rules.",
		}, []string{"operation"}),
		completeness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "labchain",
			Name:      "completeness_score",
			Help:      "Completeness scores reported by missing-field detection.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
	reg.MustRegister(
		m.requests,
		m.generatorFailures,
		m.completeness,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest counts one operation served from source.
func (m *Metrics) ObserveRequest(operation, source string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, source).Inc()
}

// ObserveGeneratorFailure counts a failed model call.
func (m *Metrics) ObserveGeneratorFailure(operation string) {
	if m == nil {
		return
	}
	m.generatorFailures.WithLabelValues(operation).Inc()
}

// ObserveCompleteness records a completeness score.
func (m *Metrics) ObserveCompleteness(score float64) {
	if m == nil {
		return
	}
	m.completeness.Observe(score)
}
