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

var _ ports.Primitive = (*ArithmeticOracle)(nil)

// ArithmeticOracle models reversible arithmetic and oracle networks:
// state preparation circuits, comparators, and the inner product and
// distance subroutines of quantum machine learning. Cost scales
// linearly or quadratically in register width depending on the
// configured network, optionally with a log factor and a precision
// multiplier for amplitude-encoded fixed point arithmetic.
//
// Cost formula:
//   - logical_qubits = N + ancilla overhead
//   - gate_count     = ceil(gate_factor · N^exp [· log2 N] [/ ε])
//   - circuit_depth  = ceil(gate_count / N) (gates parallelize across
//     the register)
//
// Concurrency: stateless and safe for concurrent Estimate calls.
type ArithmeticOracle struct {
	// name is the unique identifier for this primitive instance.
	name string
	// config contains the validated cost constants.
	config ArithmeticOracleConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// ArithmeticOracleConfig holds the implementation constants of the
// arithmetic network cost formula.
type ArithmeticOracleConfig struct {
	// ScalingExponent selects linear (1) or quadratic (2) scaling in
	// register width.
	ScalingExponent int `yaml:"scaling_exponent" json:"scaling_exponent" validate:"required,min=1,max=2"`

	// LogFactor multiplies the count by log2(N), floored at 1, as in
	// the N·log N inner product networks.
	LogFactor bool `yaml:"log_factor" json:"log_factor"`

	// PrecisionScaled divides the count by ε for networks whose width
	// grows with the target fixed point accuracy. State preparation
	// networks leave this off.
	PrecisionScaled bool `yaml:"precision_scaled" json:"precision_scaled"`

	// AncillaQubits is the fixed work register overhead.
	AncillaQubits int `yaml:"ancilla_qubits" json:"ancilla_qubits" validate:"min=0,max=64"`

	// GateFactor is the constant multiplier of the network size.
	GateFactor float64 `yaml:"gate_factor" json:"gate_factor" validate:"required,gt=0"`
}

// DefaultArithmeticOracleConfig returns a linear, precision-free
// network with unit gate factor, the shape used for state preparation.
func DefaultArithmeticOracleConfig() ArithmeticOracleConfig {
	return ArithmeticOracleConfig{ScalingExponent: 1, GateFactor: 1.0}
}

// NewArithmeticOracle creates an ArithmeticOracle primitive with a
// validated configuration.
func NewArithmeticOracle(name string, config ArithmeticOracleConfig) (*ArithmeticOracle, error) {
	if name == "" {
		return nil, ErrEmptyPrimitiveName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ArithmeticOracle{
		name:   name,
		config: config,
		tracer: otel.Tracer("arithmetic-oracle"),
	}, nil
}

// Name returns the unique identifier for this primitive instance.
func (ao *ArithmeticOracle) Name() string { return ao.name }

// Estimate evaluates the arithmetic network cost formula.
func (ao *ArithmeticOracle) Estimate(ctx context.Context, params domain.Parameters) (domain.LogicalResources, error) {
	_, span := ao.tracer.Start(ctx, "ArithmeticOracle.Estimate",
		trace.WithAttributes(
			attribute.String("primitive.id", ao.name),
			attribute.Int("params.system_size", params.SystemSize),
			attribute.Int("config.scaling_exponent", ao.config.ScalingExponent),
		),
	)
	defer span.End()

	if params.SystemSize < 1 || params.Precision <= 0 || params.Precision >= 1 {
		err := fmt.Errorf("%w: system_size=%d precision=%v", ErrInvalidParameters,
			params.SystemSize, params.Precision)
		span.RecordError(err)
		return domain.LogicalResources{}, err
	}

	n := float64(params.SystemSize)
	count := ao.config.GateFactor * math.Pow(n, float64(ao.config.ScalingExponent))
	if ao.config.LogFactor {
		count *= log2AtLeastOne(params.SystemSize)
	}
	if ao.config.PrecisionScaled {
		count /= params.Precision
	}

	gates, capped := ceilCount(count)
	depth, depthCapped := ceilCount(float64(gates) / n)

	res := domain.LogicalResources{
		LogicalQubits: int64(params.SystemSize + ao.config.AncillaQubits),
		GateCount:     gates,
		CircuitDepth:  depth,
		Capped:        capped || depthCapped,
	}

	span.SetAttributes(
		attribute.Int64("cost.gate_count", res.GateCount),
		attribute.Int64("cost.circuit_depth", res.CircuitDepth),
		attribute.Bool("cost.capped", res.Capped),
	)
	return res, nil
}

// Validate verifies the primitive's configuration constants.
func (ao *ArithmeticOracle) Validate() error {
	if err := validate.Struct(ao.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// NewArithmeticOracleFromConfig creates an ArithmeticOracle from a
// configuration map. Missing keys keep their defaults.
func NewArithmeticOracleFromConfig(id string, config map[string]any) (ports.Primitive, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultArithmeticOracleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return NewArithmeticOracle(id, cfg)
}
