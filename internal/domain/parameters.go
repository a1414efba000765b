// Package domain contains the core types of the resource estimation
// engine: input parameters, logical and physical resource records, and
// the error taxonomy shared by every pipeline stage.
package domain

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Domain identifies an application domain with a fixed primitive
// composition recipe. The set is closed; adding a domain means adding
// a recipe table entry, not new control flow.
type Domain string

// Supported application domains.
const (
	// DomainFermiHubbard models electronic materials and superconductors
	// via lattice Hamiltonian simulation.
	DomainFermiHubbard Domain = "fermi_hubbard"

	// DomainChemistry models molecular ground state energy calculation
	// via Hamiltonian simulation combined with phase estimation.
	DomainChemistry Domain = "chemistry"

	// DomainOptimization models combinatorial search via amplitude
	// estimation over an exponential search space.
	DomainOptimization Domain = "optimization"

	// DomainMachineLearning models quantum-enhanced learning workloads
	// via arithmetic and oracle primitives.
	DomainMachineLearning Domain = "machine_learning"
)

// HardwareProfile selects the physical qubit technology assumptions,
// which affect only the syndrome extraction cycle time.
type HardwareProfile string

// Supported hardware profiles.
const (
	// HardwareSuperconducting assumes fast gates and ~1µs syndrome
	// extraction with 2D connectivity matching the surface code.
	HardwareSuperconducting HardwareProfile = "superconducting"

	// HardwareTrappedIon assumes high-fidelity gates with ~100µs
	// syndrome extraction.
	HardwareTrappedIon HardwareProfile = "trapped_ion"
)

// Default coupling values applied when the caller leaves the
// Fermi-Hubbard couplings unset.
const (
	DefaultHoppingParameter    = 1.0
	DefaultInteractionStrength = 8.0
)

// Parameters is the immutable input record for a single estimation.
// It is constructed once per request, consumed by the pipeline, and
// discarded after producing a ResourceEstimate. Values are validated
// against the tagged bounds and rejected, never clamped.
type Parameters struct {
	// Domain selects the application domain and thereby the primitive
	// composition recipe.
	Domain Domain `json:"domain" yaml:"domain" validate:"required,oneof=fermi_hubbard chemistry optimization machine_learning"`

	// SystemSize is the problem size: lattice sites, spin orbitals,
	// decision variables, or feature dimensions depending on the domain.
	SystemSize int `json:"system_size" yaml:"system_size" validate:"required,min=1,max=100000"`

	// Precision is the target solution accuracy ε. Tighter precision
	// (smaller ε) never decreases any resource figure.
	Precision float64 `json:"precision" yaml:"precision" validate:"required,gt=0,lt=1"`

	// PhysicalErrorRate is the scalar per-operation error rate p of the
	// underlying hardware. Estimates are infeasible when p reaches the
	// surface code threshold.
	PhysicalErrorRate float64 `json:"physical_error_rate" yaml:"physical_error_rate" validate:"required,gt=0,lt=1"`

	// HoppingParameter is the Fermi-Hubbard hopping amplitude t.
	// Ignored by other domains. Zero means DefaultHoppingParameter.
	HoppingParameter float64 `json:"hopping_parameter,omitempty" yaml:"hopping_parameter,omitempty" validate:"omitempty,min=0.1,max=10"`

	// InteractionStrength is the Fermi-Hubbard on-site interaction U.
	// Ignored by other domains. Zero means DefaultInteractionStrength.
	InteractionStrength float64 `json:"interaction_strength,omitempty" yaml:"interaction_strength,omitempty" validate:"omitempty,min=1,max=20"`

	// Hardware selects the physical technology assumptions. Empty means
	// HardwareSuperconducting.
	Hardware HardwareProfile `json:"hardware,omitempty" yaml:"hardware,omitempty" validate:"omitempty,oneof=superconducting trapped_ion"`
}

// WithDefaults returns a copy of p with unset optional fields replaced
// by their documented defaults. The receiver is not modified.
func (p Parameters) WithDefaults() Parameters {
	if p.HoppingParameter == 0 {
		p.HoppingParameter = DefaultHoppingParameter
	}
	if p.InteractionStrength == 0 {
		p.InteractionStrength = DefaultInteractionStrength
	}
	if p.Hardware == "" {
		p.Hardware = HardwareSuperconducting
	}
	return p
}

// domainAliases maps accepted spellings to canonical Domain values.
// Hyphenated forms match the names used by the survey literature.
var domainAliases = map[string]Domain{
	"fermi_hubbard":     DomainFermiHubbard,
	"fermi-hubbard":     DomainFermiHubbard,
	"fermihubbard":      DomainFermiHubbard,
	"chemistry":         DomainChemistry,
	"quantum-chemistry": DomainChemistry,
	"quantum_chemistry": DomainChemistry,
	"optimization":      DomainOptimization,
	"machine_learning":  DomainMachineLearning,
	"machine-learning":  DomainMachineLearning,
	"ml":                DomainMachineLearning,
}

// maxSuggestionDistance bounds how far an unknown domain name may be
// from a known one before the suggestion is considered noise.
const maxSuggestionDistance = 5

// ParseDomain resolves a user-supplied domain name to a canonical
// Domain value. Matching is case-insensitive and accepts the common
// hyphenated aliases. Unknown names return ErrUnknownDomain wrapped
// with a nearest-match suggestion when one is close enough.
func ParseDomain(name string) (Domain, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if d, ok := domainAliases[normalized]; ok {
		return d, nil
	}

	// Suggest the closest canonical name to catch typos like "chemisty".
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for alias := range domainAliases {
		if d := levenshtein.ComputeDistance(normalized, alias); d < bestDistance {
			best = alias
			bestDistance = d
		}
	}

	if best != "" && bestDistance <= maxSuggestionDistance {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownDomain, name, best)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, name)
}

// DomainInfo describes an application domain for catalog listings.
type DomainInfo struct {
	// Domain is the canonical identifier.
	Domain Domain `json:"domain"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Description summarizes the computational task the domain models.
	Description string `json:"description"`

	// Complexity is the asymptotic scaling class of the dominant
	// algorithm for this domain.
	Complexity string `json:"complexity"`

	// ClassicalChallenge explains why the task is hard classically.
	ClassicalChallenge string `json:"classical_challenge"`

	// Primitives lists the algorithmic primitives the recipe composes.
	Primitives []string `json:"primitives"`
}

// DomainCatalog returns descriptive metadata for every supported
// domain, in a stable display order.
func DomainCatalog() []DomainInfo {
	return []DomainInfo{
		{
			Domain:             DomainFermiHubbard,
			Name:               "Fermi-Hubbard Model",
			Description:        "Quantum simulation of electronic materials and superconductors",
			Complexity:         "O(N log N / ε)",
			ClassicalChallenge: "Exponential scaling for 2D systems",
			Primitives:         []string{"State Preparation", "Hamiltonian Simulation"},
		},
		{
			Domain:             DomainChemistry,
			Name:               "Quantum Chemistry",
			Description:        "Molecular ground state energy calculation",
			Complexity:         "O(N³ / ε)",
			ClassicalChallenge: "Exponential scaling with system size",
			Primitives:         []string{"Hamiltonian Simulation", "Quantum Phase Estimation"},
		},
		{
			Domain:             DomainOptimization,
			Name:               "Quantum Optimization",
			Description:        "Solving combinatorial optimization problems",
			Complexity:         "O(√N / ε)",
			ClassicalChallenge: "NP-hard problems",
			Primitives:         []string{"Oracle Construction", "Amplitude Estimation"},
		},
		{
			Domain:             DomainMachineLearning,
			Name:               "Quantum Machine Learning",
			Description:        "Quantum-enhanced learning algorithms",
			Complexity:         "O(N log N / ε)",
			ClassicalChallenge: "Feature space dimensionality",
			Primitives:         []string{"Quantum Arithmetic"},
		},
	}
}
