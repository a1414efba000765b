// Package primitives provides the quantum algorithmic cost models that
// implement the ports.Primitive interface for the qcost estimation
// engine. Every primitive is a pure formula over system size and
// precision; none touches I/O or holds state between calls.
package primitives

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/haldane/qcost/internal/domain"
)

// Common errors returned by primitive cost models.
var (
	// ErrEmptyPrimitiveName is returned when creating a primitive with
	// an empty name.
	ErrEmptyPrimitiveName = errors.New("primitive name cannot be empty")

	// ErrInvalidParameters is returned when a primitive receives
	// parameters outside its formula's domain. The pipeline validates
	// inputs first, so hitting this indicates a caller bug.
	ErrInvalidParameters = errors.New("invalid parameters for cost formula")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// ceilCount converts a non-negative float count to an integer by
// ceiling rounding, capping at domain.MaxCount. The second return
// reports whether the value was capped.
func ceilCount(x float64) (int64, bool) {
	if x <= 0 || math.IsNaN(x) {
		return 0, false
	}
	if math.IsInf(x, 1) || x >= float64(domain.MaxCount) {
		return domain.MaxCount, true
	}
	return int64(math.Ceil(x)), false
}

// log2Ceil returns ceil(log2(x)) for x ≥ 1, and 0 otherwise.
func log2Ceil(x float64) int64 {
	if x <= 1 {
		return 0
	}
	return int64(math.Ceil(math.Log2(x)))
}

// log2AtLeastOne returns log2(n) floored at 1, used where a
// logarithmic factor must not vanish for trivial sizes.
func log2AtLeastOne(n int) float64 {
	if n < 2 {
		return 1
	}
	return math.Log2(float64(n))
}
