// Package ports defines the interfaces that connect the scoring core
// to infrastructure concerns. These interfaces enable dependency
// inversion and keep the core testable without real collaborators.
package ports

import "time"

// MetricsCollector abstracts metrics collection so the core can report
// operational metrics without depending on a specific metrics system.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like evaluations, rule
	// violations by code, or degraded ranking builds.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, e.g. the
	// distribution of match totals for a season.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// NopMetrics is a MetricsCollector that discards everything. It keeps
// metrics optional for callers that do not wire a real collector.
type NopMetrics struct{}

// RecordLatency implements MetricsCollector.
func (NopMetrics) RecordLatency(string, time.Duration, map[string]string) {}

// RecordCounter implements MetricsCollector.
func (NopMetrics) RecordCounter(string, float64, map[string]string) {}

// RecordGauge implements MetricsCollector.
func (NopMetrics) RecordGauge(string, float64, map[string]string) {}

// RecordHistogram implements MetricsCollector.
func (NopMetrics) RecordHistogram(string, float64, map[string]string) {}

// Compile-time verification that NopMetrics implements MetricsCollector.
var _ MetricsCollector = (*NopMetrics)(nil)
