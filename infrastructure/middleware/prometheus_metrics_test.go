package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetricsRecordEstimation(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(registry)

	pm.RecordEstimation("chemistry", "feasible", 5*time.Millisecond)
	pm.RecordEstimation("chemistry", "feasible", 7*time.Millisecond)
	pm.RecordEstimation("optimization", "infeasible", time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(
		pm.estimationsTotal.WithLabelValues("chemistry", "feasible")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(
		pm.estimationsTotal.WithLabelValues("optimization", "infeasible")), 1e-9)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "qcost_estimations_total")
	assert.Contains(t, names, "qcost_estimation_duration_seconds")
}

func TestPrometheusMetricsRecordCodeDistance(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(registry)

	pm.RecordCodeDistance("chemistry", 9)
	pm.RecordCodeDistance("chemistry", 11)

	count := testutil.CollectAndCount(pm.codeDistance, "qcost_code_distance")
	assert.Equal(t, 1, count, "one label combination observed")
}
