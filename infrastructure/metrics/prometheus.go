// Package metrics provides the Prometheus implementation of the
// engine's MetricsCollector port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/scorehub/podium/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of scoresheet
// evaluation, rule violations by code, and deliberation build
// performance.
type PrometheusMetrics struct {
	evaluations    *prometheus.CounterVec
	ruleViolations *prometheus.CounterVec
	builds         *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	totalPoints    *prometheus.HistogramVec
	gauges         *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics in the given registerer. Passing nil registers
// in the global Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoresheet_evaluations_total",
				Help: "Total number of successful scoresheet evaluations.",
			},
			[]string{"season"},
		),
		ruleViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoresheet_rule_violations_total",
				Help: "Scoresheet rule violations by error code.",
			},
			[]string{"season", "code"},
		),
		builds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deliberation_builds_total",
				Help: "Total number of deliberation report builds.",
			},
			[]string{"season"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deliberation_normalization_fallbacks_total",
				Help: "Builds that ranked on raw scores after a normalization precondition failure.",
			},
			[]string{"season"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_operation_duration_seconds",
				Help:    "Execution time of engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "season"},
		),
		totalPoints: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoresheet_total_points",
				Help:    "Distribution of evaluated match totals.",
				Buckets: prometheus.LinearBuckets(0, 25, 12),
			},
			[]string{"season"},
		),
		gauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "engine_state",
				Help: "Current engine state values, e.g. teams in the last build.",
			},
			[]string{"metric", "season"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.latency.WithLabelValues(operation, labels["season"]).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing the counter matching the metric name.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	season := labels["season"]
	switch metric {
	case "scoresheet_evaluations":
		pm.evaluations.WithLabelValues(season).Add(value)
	case "scoresheet_rule_violations":
		pm.ruleViolations.WithLabelValues(season, labels["code"]).Add(value)
	case "deliberation_builds":
		pm.builds.WithLabelValues(season).Add(value)
	case "deliberation_normalization_fallbacks":
		pm.fallbacks.WithLabelValues(season).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting a
// labeled gauge value.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.gauges.WithLabelValues(metric, labels["season"]).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by
// recording the value in the matching histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	season := labels["season"]
	switch metric {
	case "scoresheet_total_points":
		pm.totalPoints.WithLabelValues(season).Observe(value)
	default:
		pm.latency.WithLabelValues(metric, season).Observe(value)
	}
}

// Compile-time verification that PrometheusMetrics implements
// MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
