package surfacecode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane/qcost/internal/domain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:   "default configuration",
			config: DefaultConfig(),
		},
		{
			name: "zero threshold",
			config: Config{
				Prefactor:        0.1,
				FailureBudget:    1e-3,
				CycleTimeSeconds: 1e-6,
				MaxDistance:      101,
			},
			wantError: true,
		},
		{
			name: "distance cap below minimum",
			config: Config{
				Threshold:        0.01,
				Prefactor:        0.1,
				FailureBudget:    1e-3,
				CycleTimeSeconds: 1e-6,
				MaxDistance:      1,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.config)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.config, m.Config())
		})
	}
}

func TestApplySelectsMinimalOddDistance(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	// Per-cycle target 1e-3 / (13 · 102,000) ≈ 7.5e-10; at p/p_th = 0.01
	// the scan first satisfies it at d = 9.
	logical := domain.LogicalResources{
		LogicalQubits: 13,
		GateCount:     1_002_000,
		CircuitDepth:  102_000,
	}

	code, err := m.Apply(context.Background(), logical, 1e-4, 0)
	require.NoError(t, err)

	assert.Equal(t, 9, code.Distance)
	assert.Equal(t, int64(162), code.PhysicalQubitsPerLogical)
	assert.InDelta(t, 1e-6, code.CycleTimeSeconds, 1e-18)
}

func TestApplyDistanceIsOddAndAtLeastMinimum(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	for _, rate := range []float64{1e-3, 1e-4, 1e-5, 1e-6} {
		code, err := m.Apply(context.Background(), domain.LogicalResources{
			LogicalQubits: 50,
			CircuitDepth:  1_000_000,
		}, rate, 0)
		require.NoError(t, err, "rate=%g", rate)

		assert.GreaterOrEqual(t, code.Distance, MinDistance, "rate=%g", rate)
		assert.Equal(t, 1, code.Distance%2, "distance must be odd (rate=%g)", rate)
		d := int64(code.Distance)
		assert.Equal(t, 2*d*d, code.PhysicalQubitsPerLogical, "rate=%g", rate)
	}
}

func TestApplyDistanceShrinksWithCleanerHardware(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	logical := domain.LogicalResources{LogicalQubits: 100, CircuitDepth: 1_000_000}

	previous := m.Config().MaxDistance + 1
	for _, rate := range []float64{5e-3, 1e-3, 1e-4, 1e-5} {
		code, err := m.Apply(context.Background(), logical, rate, 0)
		require.NoError(t, err, "rate=%g", rate)

		assert.LessOrEqual(t, code.Distance, previous,
			"lower error rate must not need a larger code (rate=%g)", rate)
		previous = code.Distance
	}
}

func TestApplyAboveThreshold(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	logical := domain.LogicalResources{LogicalQubits: 10, CircuitDepth: 1000}

	// At and above p_th no code distance helps; the scan is skipped.
	for _, rate := range []float64{0.01, 0.02, 0.5} {
		_, err := m.Apply(context.Background(), logical, rate, 0)
		require.Error(t, err, "rate=%g", rate)
		assert.ErrorIs(t, err, domain.ErrAboveThreshold, "rate=%g", rate)

		var infeasible *domain.InfeasibleError
		require.ErrorAs(t, err, &infeasible, "rate=%g", rate)
		assert.Contains(t, infeasible.Reason, "threshold")
	}

	// Just below threshold the search still runs (and may cap, but not
	// with a threshold error).
	_, err = m.Apply(context.Background(), logical, 0.0099, 0)
	if err != nil {
		assert.NotErrorIs(t, err, domain.ErrAboveThreshold)
	}
}

func TestApplyDistanceCapExceeded(t *testing.T) {
	config := DefaultConfig()
	config.MaxDistance = 5
	m, err := New(config)
	require.NoError(t, err)

	// Barely below threshold: suppression per step is weak, so a cap of
	// 5 cannot reach the per-cycle target of this deep circuit.
	_, err = m.Apply(context.Background(), domain.LogicalResources{
		LogicalQubits: 1000,
		CircuitDepth:  100_000_000,
	}, 9e-3, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDistanceCapExceeded)

	var infeasible *domain.InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Contains(t, infeasible.Reason, "code distance")
}

func TestApplyCycleTimeOverride(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	logical := domain.LogicalResources{LogicalQubits: 13, CircuitDepth: 102_000}

	// Trapped ion hardware runs slower syndrome rounds but the code
	// selection itself only depends on the error rate.
	slow, err := m.Apply(context.Background(), logical, 1e-4, 1e-4)
	require.NoError(t, err)
	fast, err := m.Apply(context.Background(), logical, 1e-4, 0)
	require.NoError(t, err)

	assert.Equal(t, fast.Distance, slow.Distance)
	assert.InDelta(t, 1e-4, slow.CycleTimeSeconds, 1e-18)
	assert.InDelta(t, 1e-6, fast.CycleTimeSeconds, 1e-18)
}

func TestPerCycleTargetDegenerateWorkload(t *testing.T) {
	m, err := New(DefaultConfig())
	require.NoError(t, err)

	// A zero-cycle workload gets the whole failure budget and the
	// smallest code.
	code, err := m.Apply(context.Background(), domain.LogicalResources{}, 1e-4, 0)
	require.NoError(t, err)
	assert.Equal(t, MinDistance, code.Distance)
}
