package application

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/haldane/qcost/internal/domain"
)

// SweepAxis selects which parameter a sweep varies.
type SweepAxis string

// Supported sweep axes.
const (
	// SweepSystemSize varies the problem size across integer values.
	SweepSystemSize SweepAxis = "system_size"

	// SweepPrecision varies the target accuracy ε.
	SweepPrecision SweepAxis = "precision"
)

// SweepPoint is one entry of a sweep result: the concrete parameters
// and the estimate they produced.
type SweepPoint struct {
	// Parameters is the base record with the swept axis substituted.
	Parameters domain.Parameters `json:"parameters"`

	// Estimate is the pipeline output for this point.
	Estimate domain.ResourceEstimate `json:"estimate"`
}

// SweepRunner runs the pipeline across a range of parameter values in
// parallel. Every pipeline call is pure and lock-free, so points are
// independent; the runner only bounds parallelism and preserves input
// order in its results.
type SweepRunner struct {
	pipeline    *EstimationPipeline
	parallelism int
}

// NewSweepRunner creates a SweepRunner. A non-positive parallelism
// defaults to the number of CPUs.
func NewSweepRunner(pipeline *EstimationPipeline, parallelism int) *SweepRunner {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	return &SweepRunner{pipeline: pipeline, parallelism: parallelism}
}

// Run estimates the base parameters once per value of the swept axis
// and returns the points in input order. Validation failures abort the
// whole sweep with the first error; infeasible points are ordinary
// results and do not stop the sweep.
func (sr *SweepRunner) Run(ctx context.Context, base domain.Parameters, axis SweepAxis, values []float64) ([]SweepPoint, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("sweep requires at least one value")
	}

	points := make([]SweepPoint, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sr.parallelism)

	for i, value := range values {
		i, value := i, value
		g.Go(func() error {
			params, err := substitute(base, axis, value)
			if err != nil {
				return err
			}

			est, err := sr.pipeline.Run(ctx, params)
			if err != nil {
				return fmt.Errorf("sweep point %s=%v: %w", axis, value, err)
			}
			points[i] = SweepPoint{Parameters: params, Estimate: est}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// substitute returns base with the swept axis set to value.
func substitute(base domain.Parameters, axis SweepAxis, value float64) (domain.Parameters, error) {
	switch axis {
	case SweepSystemSize:
		n := int(value)
		if float64(n) != value {
			return domain.Parameters{}, fmt.Errorf("system_size sweep value %v is not an integer", value)
		}
		base.SystemSize = n
	case SweepPrecision:
		base.Precision = value
	default:
		return domain.Parameters{}, fmt.Errorf("unknown sweep axis %q", axis)
	}
	return base, nil
}
