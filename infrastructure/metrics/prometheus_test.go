package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *PrometheusMetrics {
	return NewPrometheusMetrics(prometheus.NewRegistry())
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	labels := map[string]string{"season": "deepwater", "code": "m01-e1"}

	tests := []struct {
		name   string
		metric string
		count  int
		check  func(pm *PrometheusMetrics) float64
	}{
		{
			name:   "evaluations",
			metric: "scoresheet_evaluations",
			count:  3,
			check: func(pm *PrometheusMetrics) float64 {
				return testutil.ToFloat64(pm.evaluations.WithLabelValues("deepwater"))
			},
		},
		{
			name:   "rule violations keep the code label",
			metric: "scoresheet_rule_violations",
			count:  2,
			check: func(pm *PrometheusMetrics) float64 {
				return testutil.ToFloat64(pm.ruleViolations.WithLabelValues("deepwater", "m01-e1"))
			},
		},
		{
			name:   "builds",
			metric: "deliberation_builds",
			count:  1,
			check: func(pm *PrometheusMetrics) float64 {
				return testutil.ToFloat64(pm.builds.WithLabelValues("deepwater"))
			},
		},
		{
			name:   "normalization fallbacks",
			metric: "deliberation_normalization_fallbacks",
			count:  1,
			check: func(pm *PrometheusMetrics) float64 {
				return testutil.ToFloat64(pm.fallbacks.WithLabelValues("deepwater"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := newTestMetrics()
			for i := 0; i < tt.count; i++ {
				pm.RecordCounter(tt.metric, 1, labels)
			}
			assert.Equal(t, float64(tt.count), tt.check(pm))
		})
	}
}

func TestPrometheusMetrics_UnknownCounterIgnored(t *testing.T) {
	pm := newTestMetrics()

	assert.NotPanics(t, func() {
		pm.RecordCounter("unheard_of", 1, map[string]string{"season": "deepwater"})
	})
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	pm := newTestMetrics()
	labels := map[string]string{"season": "deepwater"}

	pm.RecordLatency("evaluate", 25*time.Millisecond, labels)
	pm.RecordLatency("evaluate", 75*time.Millisecond, labels)

	count := testutil.CollectAndCount(pm.latency, "engine_operation_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestPrometheusMetrics_RecordHistogram(t *testing.T) {
	pm := newTestMetrics()
	labels := map[string]string{"season": "deepwater"}

	pm.RecordHistogram("scoresheet_total_points", 145, labels)
	pm.RecordHistogram("scoresheet_total_points", 60, labels)

	count := testutil.CollectAndCount(pm.totalPoints, "scoresheet_total_points")
	assert.Equal(t, 1, count)
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	pm := newTestMetrics()
	labels := map[string]string{"season": "deepwater"}

	pm.RecordGauge("deliberation_teams", 24, labels)
	assert.Equal(t, 24.0,
		testutil.ToFloat64(pm.gauges.WithLabelValues("deliberation_teams", "deepwater")))

	pm.RecordGauge("deliberation_teams", 12, labels)
	assert.Equal(t, 12.0,
		testutil.ToFloat64(pm.gauges.WithLabelValues("deliberation_teams", "deepwater")))
}
