// Package ports defines the interfaces that form the contract between
// the estimation pipeline and the algorithmic infrastructure layer.
// These interfaces enable dependency inversion and make the engine
// testable without its concrete primitives.
package ports

import (
	"context"

	"github.com/haldane/qcost/internal/domain"
)

// Primitive is a quantum algorithmic building block exposing a pure
// cost formula: parameters in, logical resource tuple out.
// Implementations must be stateless, deterministic, and safe for
// concurrent use; the same Parameters must always yield the same
// tuple. Formulas are monotonically non-decreasing in system size and
// non-decreasing as precision tightens, never return negative or
// fractional counts, and keep circuit depth at or below gate count.
type Primitive interface {
	// Name returns the unique identifier for this primitive instance,
	// used in stage names, spans, and error messages.
	Name() string

	// Estimate evaluates the primitive's cost formula for the given
	// validated parameters. The context carries the trace span; the
	// computation itself is synchronous and cannot block.
	Estimate(ctx context.Context, params domain.Parameters) (domain.LogicalResources, error)

	// Validate checks that the primitive's configuration is internally
	// consistent and ready for evaluation. It is called at registration
	// time, before the primitive is published read-only.
	Validate() error
}

// PrimitiveFactory creates a Primitive from an identifier and a
// flexible configuration map, typically decoded from YAML.
type PrimitiveFactory func(id string, config map[string]any) (Primitive, error)

// PrimitiveInfo describes a primitive for catalog listings.
type PrimitiveInfo struct {
	// Type is the registry key the primitive is created under.
	Type string `json:"type"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Description summarizes what the primitive computes.
	Description string `json:"description"`

	// Complexity is the primitive's asymptotic cost class.
	Complexity string `json:"complexity"`
}
