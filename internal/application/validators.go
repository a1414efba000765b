package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/haldane/qcost/internal/domain"
)

// Package-level validator instance shared by the application layer.
var validate = validator.New()

// ParameterValidator checks raw Parameters records against the
// engine's bounds. Values are rejected, never clamped, so the caller
// can surface the exact constraint violated. Pure; no side effects.
type ParameterValidator struct {
	v *validator.Validate
}

// NewParameterValidator creates a ParameterValidator.
func NewParameterValidator() *ParameterValidator {
	return &ParameterValidator{v: validate}
}

// constraintMessages maps struct field + failed tag to the bound
// description surfaced in ValidationError.
var constraintMessages = map[string]string{
	"Domain/required":            "is required",
	"Domain/oneof":               "must be one of fermi_hubbard, chemistry, optimization, machine_learning",
	"SystemSize/required":        "must be ≥ 1",
	"SystemSize/min":             "must be ≥ 1",
	"SystemSize/max":             "must be ≤ 100000",
	"Precision/required":         "must be in (0, 1)",
	"Precision/gt":               "must be > 0",
	"Precision/lt":               "must be < 1",
	"PhysicalErrorRate/required": "must be in (0, 1)",
	"PhysicalErrorRate/gt":       "must be > 0",
	"PhysicalErrorRate/lt":       "must be < 1",
	"HoppingParameter/min":       "must be ≥ 0.1",
	"HoppingParameter/max":       "must be ≤ 10",
	"InteractionStrength/min":    "must be ≥ 1",
	"InteractionStrength/max":    "must be ≤ 20",
	"Hardware/oneof":             "must be one of superconducting, trapped_ion",
}

// fieldJSONNames maps struct fields to their wire names so validation
// failures are reported in the caller's vocabulary.
var fieldJSONNames = map[string]string{
	"Domain":              "domain",
	"SystemSize":          "system_size",
	"Precision":           "precision",
	"PhysicalErrorRate":   "physical_error_rate",
	"HoppingParameter":    "hopping_parameter",
	"InteractionStrength": "interaction_strength",
	"Hardware":            "hardware",
}

// Validate checks the raw record and returns a copy with optional
// fields defaulted. The first out-of-range field is reported as a
// domain.ValidationError naming the field and the violated bound.
func (pv *ParameterValidator) Validate(raw domain.Parameters) (domain.Parameters, error) {
	params := raw.WithDefaults()

	if err := pv.v.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return domain.Parameters{}, pv.translate(fe)
		}
		return domain.Parameters{}, fmt.Errorf("parameter validation failed: %w", err)
	}

	return params, nil
}

// translate converts a validator field error into the engine's
// ValidationError shape.
func (pv *ParameterValidator) translate(fe validator.FieldError) *domain.ValidationError {
	field := fieldJSONNames[fe.StructField()]
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}

	constraint := constraintMessages[fe.StructField()+"/"+fe.Tag()]
	if constraint == "" {
		constraint = fmt.Sprintf("failed %q constraint", fe.Tag())
	}

	return domain.NewValidationError(field, constraint)
}
