package ports

import (
	"time"
)

// MetricsCollector receives observability events from the estimation
// pipeline. Implementations must be safe for concurrent use; the
// engine calls them synchronously on the request path, so recording
// must be cheap and non-blocking.
type MetricsCollector interface {
	// RecordEstimation records one completed pipeline run with its
	// domain label, outcome status ("feasible", "infeasible",
	// "validation_error" or "error"), and wall-clock duration.
	RecordEstimation(domain string, status string, duration time.Duration)

	// RecordCodeDistance records the surface code distance selected for
	// a feasible estimate.
	RecordCodeDistance(domain string, distance int)
}

// NoopMetrics is a MetricsCollector that discards all events. It is
// the default when no collector is wired in.
type NoopMetrics struct{}

// RecordEstimation implements MetricsCollector.
func (NoopMetrics) RecordEstimation(string, string, time.Duration) {}

// RecordCodeDistance implements MetricsCollector.
func (NoopMetrics) RecordCodeDistance(string, int) {}
