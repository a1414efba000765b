package primitives

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane/qcost/internal/domain"
)

func TestNewAmplitudeEstimation(t *testing.T) {
	tests := []struct {
		name      string
		primName  string
		config    AmplitudeEstimationConfig
		wantError bool
		errorMsg  string
	}{
		{
			name:     "valid configuration",
			primName: "ae",
			config:   DefaultAmplitudeEstimationConfig(),
		},
		{
			name:      "empty name",
			primName:  "",
			config:    DefaultAmplitudeEstimationConfig(),
			wantError: true,
			errorMsg:  "primitive name cannot be empty",
		},
		{
			name:      "zero gate factor",
			primName:  "ae",
			config:    AmplitudeEstimationConfig{AncillaQubits: 2, GateFactor: 0},
			wantError: true,
			errorMsg:  "validation failed",
		},
		{
			name:      "excessive ancilla",
			primName:  "ae",
			config:    AmplitudeEstimationConfig{AncillaQubits: 128, GateFactor: 1},
			wantError: true,
			errorMsg:  "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae, err := NewAmplitudeEstimation(tt.primName, tt.config)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, ae)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.primName, ae.Name())
		})
	}
}

func TestAmplitudeEstimationEstimate(t *testing.T) {
	ae, err := NewAmplitudeEstimation("ae", DefaultAmplitudeEstimationConfig())
	require.NoError(t, err)

	res, err := ae.Estimate(context.Background(), domain.Parameters{
		Domain:     domain.DomainOptimization,
		SystemSize: 20,
		Precision:  0.01,
	})
	require.NoError(t, err)

	// 20 index qubits plus 2 readout ancilla; √(2^20) / 0.01 = 102,400
	// sequential Grover iterations.
	assert.Equal(t, int64(22), res.LogicalQubits)
	assert.Equal(t, int64(102_400), res.GateCount)
	assert.Equal(t, res.GateCount, res.CircuitDepth)
	assert.False(t, res.Capped)
}

func TestAmplitudeEstimationExponentialGrowth(t *testing.T) {
	ae, err := NewAmplitudeEstimation("ae", DefaultAmplitudeEstimationConfig())
	require.NoError(t, err)

	small, err := ae.Estimate(context.Background(), domain.Parameters{
		SystemSize: 10, Precision: 0.01,
	})
	require.NoError(t, err)

	large, err := ae.Estimate(context.Background(), domain.Parameters{
		SystemSize: 12, Precision: 0.01,
	})
	require.NoError(t, err)

	// Two more variables double the oracle count.
	assert.Equal(t, small.GateCount*2, large.GateCount)
}

func TestAmplitudeEstimationCapsAtMaxCount(t *testing.T) {
	ae, err := NewAmplitudeEstimation("ae", DefaultAmplitudeEstimationConfig())
	require.NoError(t, err)

	res, err := ae.Estimate(context.Background(), domain.Parameters{
		SystemSize: 200,
		Precision:  0.01,
	})
	require.NoError(t, err)

	// √(2^200) dwarfs the representable count range.
	assert.True(t, res.Capped)
	assert.Equal(t, domain.MaxCount, res.GateCount)
	assert.Equal(t, int64(202), res.LogicalQubits)
}

func TestAmplitudeEstimationRejectsInvalidParameters(t *testing.T) {
	ae, err := NewAmplitudeEstimation("ae", DefaultAmplitudeEstimationConfig())
	require.NoError(t, err)

	for _, params := range []domain.Parameters{
		{SystemSize: 0, Precision: 0.01},
		{SystemSize: 10, Precision: -0.5},
	} {
		_, err := ae.Estimate(context.Background(), params)
		assert.ErrorIs(t, err, ErrInvalidParameters, "params=%+v", params)
	}
}

func TestNewAmplitudeEstimationFromConfig(t *testing.T) {
	ae, err := NewAmplitudeEstimationFromConfig("ae", map[string]any{
		"ancilla_qubits": 0,
		"gate_factor":    2.0,
	})
	require.NoError(t, err)

	res, err := ae.Estimate(context.Background(), domain.Parameters{
		SystemSize: 10, Precision: 0.1,
	})
	require.NoError(t, err)

	// 2 · √(2^10) / 0.1 = 640.
	assert.Equal(t, int64(10), res.LogicalQubits)
	assert.Equal(t, int64(640), res.GateCount)
}
