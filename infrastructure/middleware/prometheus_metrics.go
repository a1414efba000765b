// Package middleware provides cross-cutting concerns for the
// estimation engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/haldane/qcost/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of estimation volume,
// latency, outcomes, and selected code distances.
type PrometheusMetrics struct {
	estimationsTotal   *prometheus.CounterVec
	estimationDuration *prometheus.HistogramVec
	codeDistance       *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers its metrics with the given registerer. A nil registerer
// uses the global default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		estimationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qcost_estimations_total",
				Help: "Total number of estimation pipeline runs by domain and outcome.",
			},
			[]string{"domain", "status"},
		),
		estimationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qcost_estimation_duration_seconds",
				Help:    "Wall-clock duration of estimation pipeline runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
		codeDistance: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qcost_code_distance",
				Help:    "Surface code distance selected for feasible estimates.",
				Buckets: []float64{3, 5, 7, 9, 11, 15, 21, 31, 51, 101},
			},
			[]string{"domain"},
		),
	}
}

// RecordEstimation implements the MetricsCollector interface by
// counting the run and observing its latency.
func (pm *PrometheusMetrics) RecordEstimation(domain, status string, duration time.Duration) {
	pm.estimationsTotal.WithLabelValues(domain, status).Inc()
	pm.estimationDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

// RecordCodeDistance implements the MetricsCollector interface by
// observing the selected distance.
func (pm *PrometheusMetrics) RecordCodeDistance(domain string, distance int) {
	pm.codeDistance.WithLabelValues(domain).Observe(float64(distance))
}
