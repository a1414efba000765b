package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane/qcost/internal/domain"
)

func TestSweepSystemSizePreservesOrder(t *testing.T) {
	ep := newTestPipeline(t)
	sr := NewSweepRunner(ep, 4)

	base := domain.Parameters{
		Domain:            domain.DomainChemistry,
		Precision:         0.001,
		PhysicalErrorRate: 0.0001,
	}
	values := []float64{4, 8, 16, 32, 64}

	points, err := sr.Run(context.Background(), base, SweepSystemSize, values)
	require.NoError(t, err)
	require.Len(t, points, len(values))

	var prevGates int64
	for i, p := range points {
		assert.Equal(t, int(values[i]), p.Parameters.SystemSize, "point %d", i)
		require.True(t, p.Estimate.Feasible, "point %d", i)
		assert.GreaterOrEqual(t, p.Estimate.TotalGates, prevGates, "point %d", i)
		prevGates = p.Estimate.TotalGates
	}
}

func TestSweepPrecision(t *testing.T) {
	ep := newTestPipeline(t)
	sr := NewSweepRunner(ep, 0)

	base := domain.Parameters{
		Domain:            domain.DomainOptimization,
		SystemSize:        16,
		PhysicalErrorRate: 0.0001,
	}

	points, err := sr.Run(context.Background(), base, SweepPrecision, []float64{0.1, 0.01, 0.001})
	require.NoError(t, err)
	require.Len(t, points, 3)

	for i, p := range points {
		assert.InDelta(t, []float64{0.1, 0.01, 0.001}[i], p.Parameters.Precision, 1e-12)
	}
	assert.Less(t, points[0].Estimate.TotalGates, points[2].Estimate.TotalGates)
}

func TestSweepIncludesInfeasiblePoints(t *testing.T) {
	ep := newTestPipeline(t)
	sr := NewSweepRunner(ep, 2)

	// Above-threshold error rate: every point is infeasible, but the
	// sweep itself succeeds.
	base := domain.Parameters{
		Domain:            domain.DomainChemistry,
		Precision:         0.01,
		PhysicalErrorRate: 0.05,
	}

	points, err := sr.Run(context.Background(), base, SweepSystemSize, []float64{4, 8})
	require.NoError(t, err)
	for _, p := range points {
		assert.False(t, p.Estimate.Feasible)
		assert.Contains(t, p.Estimate.Reason, "threshold")
	}
}

func TestSweepMatchesSequentialRuns(t *testing.T) {
	ep := newTestPipeline(t)

	base := domain.Parameters{
		Domain:            domain.DomainMachineLearning,
		Precision:         0.001,
		PhysicalErrorRate: 0.0001,
	}
	values := []float64{8, 16, 32}

	parallel, err := NewSweepRunner(ep, 8).Run(context.Background(), base, SweepSystemSize, values)
	require.NoError(t, err)
	sequential, err := NewSweepRunner(ep, 1).Run(context.Background(), base, SweepSystemSize, values)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestSweepErrors(t *testing.T) {
	ep := newTestPipeline(t)
	sr := NewSweepRunner(ep, 2)

	base := domain.Parameters{
		Domain:            domain.DomainChemistry,
		Precision:         0.001,
		PhysicalErrorRate: 0.0001,
	}

	_, err := sr.Run(context.Background(), base, SweepSystemSize, nil)
	assert.ErrorContains(t, err, "at least one value")

	_, err = sr.Run(context.Background(), base, SweepSystemSize, []float64{4.5})
	assert.ErrorContains(t, err, "not an integer")

	_, err = sr.Run(context.Background(), base, "temperature", []float64{1})
	assert.ErrorContains(t, err, "unknown sweep axis")

	// A validation failure at any point aborts the whole sweep.
	_, err = sr.Run(context.Background(), base, SweepSystemSize, []float64{4, 0})
	assert.Error(t, err)
}
