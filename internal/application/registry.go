package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/haldane/qcost/infrastructure/primitives"
	"github.com/haldane/qcost/internal/ports"
)

// Primitive type identifiers registered by default.
const (
	TypePhaseEstimation       = "phase_estimation"
	TypeHamiltonianSimulation = "hamiltonian_simulation"
	TypeAmplitudeEstimation   = "amplitude_estimation"
	TypeArithmeticOracle      = "arithmetic_oracle"
)

// PrimitiveRegistry is a factory for cost model primitives keyed by
// type. It is populated once at process start and read-only
// thereafter; the registry itself holds no per-call state.
type PrimitiveRegistry struct {
	// factories maps primitive type strings to their factory functions.
	factories map[string]ports.PrimitiveFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewPrimitiveRegistry creates a registry with the standard primitive
// types pre-registered: phase estimation, Hamiltonian simulation,
// amplitude estimation, and arithmetic oracles.
func NewPrimitiveRegistry() *PrimitiveRegistry {
	r := &PrimitiveRegistry{factories: make(map[string]ports.PrimitiveFactory)}

	r.factories[TypePhaseEstimation] = primitives.NewPhaseEstimationFromConfig
	r.factories[TypeHamiltonianSimulation] = primitives.NewHamiltonianSimulationFromConfig
	r.factories[TypeAmplitudeEstimation] = primitives.NewAmplitudeEstimationFromConfig
	r.factories[TypeArithmeticOracle] = primitives.NewArithmeticOracleFromConfig

	return r
}

// RegisterFactory adds or replaces a factory for the given primitive
// type. Intended for extension at startup, before estimates run.
func (r *PrimitiveRegistry) RegisterFactory(primitiveType string, factory ports.PrimitiveFactory) error {
	if primitiveType == "" {
		return fmt.Errorf("primitive type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for type %q", primitiveType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[primitiveType] = factory
	return nil
}

// Create instantiates a primitive of the given type with the given
// identifier and configuration map, and validates it before returning.
func (r *PrimitiveRegistry) Create(primitiveType, id string, config map[string]any) (ports.Primitive, error) {
	r.mu.RLock()
	factory, ok := r.factories[primitiveType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown primitive type: %q", primitiveType)
	}

	p, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("create %s primitive %q: %w", primitiveType, id, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s primitive %q: %w", primitiveType, id, err)
	}
	return p, nil
}

// Types returns the registered primitive type identifiers, sorted.
func (r *PrimitiveRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// PrimitiveCatalog returns descriptive metadata for the built-in
// primitive types, in a stable display order.
func PrimitiveCatalog() []ports.PrimitiveInfo {
	return []ports.PrimitiveInfo{
		{
			Type:        TypePhaseEstimation,
			Name:        "Quantum Phase Estimation",
			Description: "Estimates eigenvalues of unitary operators with high precision",
			Complexity:  "O(1/ε)",
		},
		{
			Type:        TypeHamiltonianSimulation,
			Name:        "Hamiltonian Simulation",
			Description: "Simulates time evolution under quantum Hamiltonians",
			Complexity:  "O(N²/ε)",
		},
		{
			Type:        TypeAmplitudeEstimation,
			Name:        "Amplitude Estimation",
			Description: "Generalizes Grover's algorithm for amplitude readout",
			Complexity:  "O(√N/ε)",
		},
		{
			Type:        TypeArithmeticOracle,
			Name:        "Quantum Arithmetic",
			Description: "Reversible arithmetic, comparators, and oracle networks",
			Complexity:  "O(N)–O(N²)",
		},
	}
}
