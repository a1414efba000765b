package primitives

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/haldane/qcost/internal/domain"
	"github.com/haldane/qcost/internal/ports"
)

var _ ports.Primitive = (*PhaseEstimation)(nil)

// PhaseEstimation models textbook Quantum Phase Estimation: reading an
// eigenphase to precision ε requires ceil(log2(1/ε)) phase register
// qubits and O(1/ε) controlled applications of the target unitary,
// executed sequentially.
//
// Cost formula:
//   - logical_qubits = ceil(log2(1/ε)) + ancilla overhead
//   - gate_count     = ceil(gate_factor / ε)
//   - circuit_depth  = gate_count (controlled powers run in sequence)
//
// The formula is monotone: tightening ε never decreases any figure,
// and it is independent of system size (the simulated register is
// accounted for by the stage it estimates phases of).
//
// Concurrency: stateless and safe for concurrent Estimate calls.
type PhaseEstimation struct {
	// name is the unique identifier for this primitive instance.
	name string
	// config contains the validated cost constants.
	config PhaseEstimationConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// PhaseEstimationConfig holds the implementation constants of the QPE
// cost formula. Configuration is immutable after creation.
type PhaseEstimationConfig struct {
	// AncillaQubits is the fixed work register overhead added on top of
	// the phase register.
	AncillaQubits int `yaml:"ancilla_qubits" json:"ancilla_qubits" validate:"min=0,max=64"`

	// GateFactor is the constant in gate_count = gate_factor / ε,
	// absorbing the cost of one controlled-unitary application.
	GateFactor float64 `yaml:"gate_factor" json:"gate_factor" validate:"required,gt=0"`
}

// DefaultPhaseEstimationConfig returns literature-backed defaults:
// three ancilla qubits and two gates per inverse-precision step.
func DefaultPhaseEstimationConfig() PhaseEstimationConfig {
	return PhaseEstimationConfig{AncillaQubits: 3, GateFactor: 2.0}
}

// NewPhaseEstimation creates a PhaseEstimation primitive with a
// validated configuration. Returns ErrEmptyPrimitiveName if name is
// empty, or a validation error for out-of-range constants.
func NewPhaseEstimation(name string, config PhaseEstimationConfig) (*PhaseEstimation, error) {
	if name == "" {
		return nil, ErrEmptyPrimitiveName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &PhaseEstimation{
		name:   name,
		config: config,
		tracer: otel.Tracer("phase-estimation"),
	}, nil
}

// Name returns the unique identifier for this primitive instance.
func (pe *PhaseEstimation) Name() string { return pe.name }

// Estimate evaluates the QPE cost formula for the given parameters.
// Only Precision participates; SystemSize enters through the stages
// QPE is composed with.
func (pe *PhaseEstimation) Estimate(ctx context.Context, params domain.Parameters) (domain.LogicalResources, error) {
	_, span := pe.tracer.Start(ctx, "PhaseEstimation.Estimate",
		trace.WithAttributes(
			attribute.String("primitive.id", pe.name),
			attribute.Float64("params.precision", params.Precision),
		),
	)
	defer span.End()

	if params.Precision <= 0 || params.Precision >= 1 {
		err := fmt.Errorf("%w: precision %v outside (0,1)", ErrInvalidParameters, params.Precision)
		span.RecordError(err)
		return domain.LogicalResources{}, err
	}

	phaseRegister := log2Ceil(1 / params.Precision)
	gates, capped := ceilCount(pe.config.GateFactor / params.Precision)

	res := domain.LogicalResources{
		LogicalQubits: phaseRegister + int64(pe.config.AncillaQubits),
		GateCount:     gates,
		CircuitDepth:  gates,
		Capped:        capped,
	}

	span.SetAttributes(
		attribute.Int64("cost.logical_qubits", res.LogicalQubits),
		attribute.Int64("cost.gate_count", res.GateCount),
		attribute.Bool("cost.capped", res.Capped),
	)
	return res, nil
}

// Validate verifies the primitive's configuration constants.
func (pe *PhaseEstimation) Validate() error {
	if err := validate.Struct(pe.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if math.IsNaN(pe.config.GateFactor) || math.IsInf(pe.config.GateFactor, 0) {
		return fmt.Errorf("gate factor must be finite")
	}
	return nil
}

// NewPhaseEstimationFromConfig creates a PhaseEstimation from a
// configuration map. This is the boundary adapter for YAML recipe
// definitions; missing keys keep their defaults.
func NewPhaseEstimationFromConfig(id string, config map[string]any) (ports.Primitive, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultPhaseEstimationConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return NewPhaseEstimation(id, cfg)
}
