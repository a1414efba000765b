// Package surfacecode converts logical resource tuples into physical
// resources under a surface code error correction model: it selects
// the minimal code distance meeting a per-qubit-cycle error budget and
// derives physical qubit counts and wall-clock runtime from it.
package surfacecode

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/haldane/qcost/internal/domain"
)

// MinDistance is the smallest usable surface code distance.
const MinDistance = 3

// Config holds the named constants of the fault tolerance model. The
// defaults follow standard surface code literature values; all are
// implementation parameters, not physical facts.
type Config struct {
	// Threshold is the code threshold p_th below which increasing
	// distance suppresses logical error exponentially.
	Threshold float64 `yaml:"threshold" json:"threshold" validate:"required,gt=0,lt=1"`

	// Prefactor is the constant A in the logical error model
	// A · (p/p_th)^((d+1)/2).
	Prefactor float64 `yaml:"prefactor" json:"prefactor" validate:"required,gt=0"`

	// FailureBudget is the total allowed probability δ that the whole
	// algorithm run fails, divided across logical qubit-cycles to give
	// the per-cycle target.
	FailureBudget float64 `yaml:"failure_budget" json:"failure_budget" validate:"required,gt=0,lt=1"`

	// CycleTimeSeconds is the default duration of one syndrome
	// extraction round, used when the caller supplies no hardware
	// override.
	CycleTimeSeconds float64 `yaml:"cycle_time_seconds" json:"cycle_time_seconds" validate:"required,gt=0"`

	// MaxDistance bounds the distance search; parameters needing more
	// are reported infeasible.
	MaxDistance int `yaml:"max_distance" json:"max_distance" validate:"required,min=3,max=1001"`
}

// DefaultConfig returns literature-backed defaults: 1% threshold,
// prefactor 0.1, a 10⁻³ total failure budget, a 1µs superconducting
// syndrome cycle, and a distance cap of 101.
func DefaultConfig() Config {
	return Config{
		Threshold:        0.01,
		Prefactor:        0.1,
		FailureBudget:    1e-3,
		CycleTimeSeconds: 1e-6,
		MaxDistance:      101,
	}
}

var validate = validator.New()

// Model selects surface code parameters for logical workloads. It is
// stateless apart from its immutable configuration and safe for
// concurrent use.
type Model struct {
	// config contains the validated model constants.
	config Config
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// New creates a Model with a validated configuration.
func New(config Config) (*Model, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}
	return &Model{
		config: config,
		tracer: otel.Tracer("surface-code"),
	}, nil
}

// Config returns the model's constants.
func (m *Model) Config() Config { return m.config }

// Apply selects the minimal surface code for the given logical
// workload and physical error rate, using cycleSeconds as the
// syndrome round duration (zero means the configured default).
//
// The per-qubit-cycle failure target is the configured budget divided
// by logical_qubits × circuit_depth. The selected distance is the
// smallest odd d ≥ 3 with prefactor · (p/p_th)^((d+1)/2) ≤ target.
//
// Returns an InfeasibleError wrapping domain.ErrAboveThreshold when
// p ≥ p_th (no distance exists, so no search is attempted), or
// domain.ErrDistanceCapExceeded when the bounded scan finds none.
func (m *Model) Apply(ctx context.Context, logical domain.LogicalResources, physicalErrorRate, cycleSeconds float64) (domain.SurfaceCode, error) {
	_, span := m.tracer.Start(ctx, "SurfaceCode.Apply",
		trace.WithAttributes(
			attribute.Int64("logical.qubits", logical.LogicalQubits),
			attribute.Int64("logical.depth", logical.CircuitDepth),
			attribute.Float64("physical_error_rate", physicalErrorRate),
		),
	)
	defer span.End()

	if cycleSeconds <= 0 {
		cycleSeconds = m.config.CycleTimeSeconds
	}

	if physicalErrorRate >= m.config.Threshold {
		err := domain.NewInfeasibleError(domain.ErrAboveThreshold,
			"physical_error_rate %g exceeds fault-tolerance threshold %g",
			physicalErrorRate, m.config.Threshold)
		span.RecordError(err)
		return domain.SurfaceCode{}, err
	}

	target := m.perCycleTarget(logical)
	suppression := physicalErrorRate / m.config.Threshold

	distance := 0
	for d := MinDistance; d <= m.config.MaxDistance; d += 2 {
		logicalErrorRate := m.config.Prefactor *
			math.Pow(suppression, float64(d+1)/2)
		if logicalErrorRate <= target {
			distance = d
			break
		}
	}

	if distance == 0 {
		err := domain.NewInfeasibleError(domain.ErrDistanceCapExceeded,
			"no code distance ≤ %d satisfies target error budget %.3g",
			m.config.MaxDistance, target)
		span.RecordError(err)
		return domain.SurfaceCode{}, err
	}

	code := domain.SurfaceCode{
		Distance:                 distance,
		PhysicalQubitsPerLogical: 2 * int64(distance) * int64(distance),
		CycleTimeSeconds:         cycleSeconds,
	}

	span.SetAttributes(
		attribute.Int("code.distance", code.Distance),
		attribute.Int64("code.physical_per_logical", code.PhysicalQubitsPerLogical),
	)
	return code, nil
}

// perCycleTarget divides the failure budget across all logical
// qubit-cycles of the workload. Degenerate workloads with zero cycles
// get the whole budget.
func (m *Model) perCycleTarget(logical domain.LogicalResources) float64 {
	cycles := float64(logical.LogicalQubits) * float64(logical.CircuitDepth)
	if cycles < 1 {
		cycles = 1
	}
	return m.config.FailureBudget / cycles
}
