package application

import (
	"context"
	"fmt"
	"math"

	"github.com/haldane/qcost/internal/domain"
	"github.com/haldane/qcost/internal/ports"
)

// StageSpec names one step of a domain recipe: which primitive type
// to instantiate and with what configuration.
type StageSpec struct {
	// Name is the display name of the stage, used in error budget
	// breakdowns.
	Name string

	// Primitive is the registry type identifier.
	Primitive string

	// Config is the primitive configuration map.
	Config map[string]any
}

// Recipe is the fixed primitive composition for one application
// domain, plus the domain's block encoding normalization.
type Recipe struct {
	// Stages execute in sequence over a shared logical register.
	Stages []StageSpec

	// Alpha computes the block encoding parameter α for display.
	Alpha func(params domain.Parameters) float64
}

// recipeTable is the closed mapping from domain to composition.
// Adding a domain means adding one entry here.
var recipeTable = map[domain.Domain]Recipe{
	domain.DomainFermiHubbard: {
		Stages: []StageSpec{
			{
				Name:      "state_preparation",
				Primitive: TypeArithmeticOracle,
				Config:    map[string]any{"scaling_exponent": 1},
			},
			{
				Name:      "hamiltonian_simulation",
				Primitive: TypeHamiltonianSimulation,
				Config:    map[string]any{"use_couplings": true},
			},
		},
		Alpha: func(p domain.Parameters) float64 {
			p = p.WithDefaults()
			return (2*p.HoppingParameter + p.InteractionStrength/8) * float64(p.SystemSize)
		},
	},
	domain.DomainChemistry: {
		Stages: []StageSpec{
			{
				Name:      "hamiltonian_simulation",
				Primitive: TypeHamiltonianSimulation,
				Config:    map[string]any{},
			},
			{
				Name:      "phase_estimation",
				Primitive: TypePhaseEstimation,
				Config:    map[string]any{},
			},
		},
		Alpha: func(p domain.Parameters) float64 {
			return 2 * float64(p.SystemSize)
		},
	},
	domain.DomainOptimization: {
		Stages: []StageSpec{
			{
				Name:      "oracle_construction",
				Primitive: TypeArithmeticOracle,
				Config:    map[string]any{"scaling_exponent": 1},
			},
			{
				Name:      "amplitude_estimation",
				Primitive: TypeAmplitudeEstimation,
				Config:    map[string]any{},
			},
		},
		Alpha: func(p domain.Parameters) float64 {
			return math.Sqrt(float64(p.SystemSize))
		},
	},
	domain.DomainMachineLearning: {
		Stages: []StageSpec{
			{
				Name:      "quantum_arithmetic",
				Primitive: TypeArithmeticOracle,
				Config: map[string]any{
					"scaling_exponent": 1,
					"log_factor":       true,
					"precision_scaled": true,
				},
			},
		},
		Alpha: func(p domain.Parameters) float64 {
			if p.SystemSize < 2 {
				return 1
			}
			return math.Log2(float64(p.SystemSize))
		},
	},
}

// composedStage pairs an instantiated primitive with its stage name.
type composedStage struct {
	name      string
	primitive ports.Primitive
}

// CompositionResult is the output of resolving a domain recipe:
// per-stage costs and the merged logical tuple.
type CompositionResult struct {
	// Stages holds the per-stage logical costs in execution order.
	Stages []domain.StageCost

	// Combined is the sequential composition: logical qubits are the
	// maximum across stages (the register is reused), gate counts and
	// depths are summed.
	Combined domain.LogicalResources

	// Alpha is the domain's block encoding parameter.
	Alpha float64
}

// DomainModel resolves application domains to primitive compositions.
// All primitives are instantiated eagerly at construction and the
// model is read-only afterwards, so Compose is safe for concurrent
// callers without locking.
type DomainModel struct {
	recipes map[domain.Domain][]composedStage
	alphas  map[domain.Domain]func(domain.Parameters) float64
}

// NewDomainModel builds the domain model from the recipe table,
// creating every stage primitive through the registry.
func NewDomainModel(registry *PrimitiveRegistry) (*DomainModel, error) {
	dm := &DomainModel{
		recipes: make(map[domain.Domain][]composedStage, len(recipeTable)),
		alphas:  make(map[domain.Domain]func(domain.Parameters) float64, len(recipeTable)),
	}

	for d, recipe := range recipeTable {
		stages := make([]composedStage, 0, len(recipe.Stages))
		for _, spec := range recipe.Stages {
			p, err := registry.Create(spec.Primitive, spec.Name, spec.Config)
			if err != nil {
				return nil, fmt.Errorf("recipe %s: %w", d, err)
			}
			stages = append(stages, composedStage{name: spec.Name, primitive: p})
		}
		dm.recipes[d] = stages
		dm.alphas[d] = recipe.Alpha
	}

	return dm, nil
}

// Compose evaluates every stage of the domain's recipe and merges the
// results: maximum qubits across stages, summed gates and depth.
func (dm *DomainModel) Compose(ctx context.Context, params domain.Parameters) (CompositionResult, error) {
	stages, ok := dm.recipes[params.Domain]
	if !ok {
		return CompositionResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, params.Domain)
	}

	result := CompositionResult{
		Stages: make([]domain.StageCost, 0, len(stages)),
		Alpha:  dm.alphas[params.Domain](params),
	}

	for _, stage := range stages {
		cost, err := stage.primitive.Estimate(ctx, params)
		if err != nil {
			return CompositionResult{}, fmt.Errorf("stage %s: %w", stage.name, err)
		}
		result.Stages = append(result.Stages, domain.StageCost{
			Stage:     stage.name,
			Resources: cost,
		})

		if cost.LogicalQubits > result.Combined.LogicalQubits {
			result.Combined.LogicalQubits = cost.LogicalQubits
		}
		result.Combined.GateCount = addCapped(result.Combined.GateCount, cost.GateCount)
		result.Combined.CircuitDepth = addCapped(result.Combined.CircuitDepth, cost.CircuitDepth)
		result.Combined.Capped = result.Combined.Capped || cost.Capped
	}

	if result.Combined.GateCount == domain.MaxCount || result.Combined.CircuitDepth == domain.MaxCount {
		result.Combined.Capped = true
	}
	return result, nil
}

// Domains returns the domains the model can compose.
func (dm *DomainModel) Domains() []domain.Domain {
	return []domain.Domain{
		domain.DomainFermiHubbard,
		domain.DomainChemistry,
		domain.DomainOptimization,
		domain.DomainMachineLearning,
	}
}

// addCapped sums two non-negative counts, saturating at
// domain.MaxCount.
func addCapped(a, b int64) int64 {
	if a > domain.MaxCount-b {
		return domain.MaxCount
	}
	return a + b
}
