// Package application wires the estimation engine together: parameter
// validation, the primitive registry, domain recipes, and the pipeline
// that runs them in strict sequence.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/haldane/qcost/infrastructure/surfacecode"
	"github.com/haldane/qcost/internal/domain"
	"github.com/haldane/qcost/internal/ports"
)

// Estimation outcome labels reported to the metrics collector.
const (
	StatusFeasible        = "feasible"
	StatusInfeasible      = "infeasible"
	StatusValidationError = "validation_error"
	StatusError           = "error"
)

// EstimationPipeline orchestrates one estimation call: validate →
// resolve domain composition → apply fault tolerance → aggregate.
// It stops at the first failure and surfaces it without partial
// results, except that infeasibility still reports the logical
// figures alongside the flag.
//
// The pipeline is pure, synchronous, and reentrant: it holds no
// mutable state between calls, so identical Parameters always produce
// identical ResourceEstimate values and concurrent callers need no
// coordination.
type EstimationPipeline struct {
	validator  *ParameterValidator
	model      *DomainModel
	ft         *surfacecode.Model
	aggregator *domain.ResourceAggregator
	config     EngineConfig
	metrics    ports.MetricsCollector
	tracer     trace.Tracer
}

// NewEstimationPipeline assembles a pipeline from the given engine
// configuration. A nil metrics collector disables metrics.
func NewEstimationPipeline(cfg EngineConfig, metrics ports.MetricsCollector) (*EstimationPipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := NewDomainModel(NewPrimitiveRegistry())
	if err != nil {
		return nil, fmt.Errorf("build domain model: %w", err)
	}

	ft, err := surfacecode.New(cfg.SurfaceCode)
	if err != nil {
		return nil, fmt.Errorf("build fault tolerance model: %w", err)
	}

	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}

	return &EstimationPipeline{
		validator:  NewParameterValidator(),
		model:      model,
		ft:         ft,
		aggregator: domain.NewResourceAggregator(),
		config:     cfg,
		metrics:    metrics,
		tracer:     otel.Tracer("estimation-pipeline"),
	}, nil
}

// Run executes one estimation for the raw parameters.
//
// Validation failures return a domain.ValidationError and a zero
// estimate. Infeasible parameters return a ResourceEstimate with
// Feasible set to false, the reason, and the logical resource figures
// filled in; this is a result, not an error. Any other error indicates
// a configuration or programming fault.
func (ep *EstimationPipeline) Run(ctx context.Context, raw domain.Parameters) (domain.ResourceEstimate, error) {
	start := time.Now()
	ctx, span := ep.tracer.Start(ctx, "EstimationPipeline.Run",
		trace.WithAttributes(
			attribute.String("params.domain", string(raw.Domain)),
			attribute.Int("params.system_size", raw.SystemSize),
			attribute.Float64("params.precision", raw.Precision),
			attribute.Float64("params.physical_error_rate", raw.PhysicalErrorRate),
		),
	)
	defer span.End()

	params, err := ep.validator.Validate(raw)
	if err != nil {
		span.RecordError(err)
		ep.metrics.RecordEstimation(string(raw.Domain), StatusValidationError, time.Since(start))
		return domain.ResourceEstimate{}, err
	}

	composition, err := ep.model.Compose(ctx, params)
	if err != nil {
		span.RecordError(err)
		ep.metrics.RecordEstimation(string(params.Domain), StatusError, time.Since(start))
		return domain.ResourceEstimate{}, err
	}

	input := domain.AggregationInput{
		Parameters:  params,
		Composition: composition.Combined,
		Stages:      composition.Stages,
		Alpha:       composition.Alpha,
	}

	cycleSeconds := ep.config.CycleSeconds(params.Hardware)
	code, err := ep.ft.Apply(ctx, composition.Combined, params.PhysicalErrorRate, cycleSeconds)
	if err != nil {
		var infeasible *domain.InfeasibleError
		if errors.As(err, &infeasible) {
			est := ep.aggregator.AggregateInfeasible(input, infeasible.Reason)
			span.SetAttributes(attribute.Bool("estimate.feasible", false))
			ep.metrics.RecordEstimation(string(params.Domain), StatusInfeasible, time.Since(start))
			return est, nil
		}
		span.RecordError(err)
		ep.metrics.RecordEstimation(string(params.Domain), StatusError, time.Since(start))
		return domain.ResourceEstimate{}, err
	}

	est := ep.aggregator.Aggregate(input, code)

	span.SetAttributes(
		attribute.Bool("estimate.feasible", true),
		attribute.Int("estimate.code_distance", est.CodeDistance),
		attribute.Int64("estimate.logical_qubits", est.LogicalQubits),
		attribute.Int64("estimate.physical_qubits", est.PhysicalQubits),
		attribute.Bool("estimate.capped", est.Capped),
	)
	ep.metrics.RecordEstimation(string(params.Domain), StatusFeasible, time.Since(start))
	ep.metrics.RecordCodeDistance(string(params.Domain), est.CodeDistance)
	return est, nil
}

// Domains exposes the supported domains for catalog endpoints.
func (ep *EstimationPipeline) Domains() []domain.Domain { return ep.model.Domains() }

// Config returns the engine configuration the pipeline was built with.
func (ep *EstimationPipeline) Config() EngineConfig { return ep.config }
