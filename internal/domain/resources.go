package domain

// MaxCount is the largest qubit or gate count the engine represents
// exactly. It is 2^53, the largest integer a float64 holds without
// rounding; formulas that exceed it produce a capped estimate rather
// than silently wrapping.
const MaxCount int64 = 1 << 53

// LogicalResources is the logical resource tuple produced by a
// primitive cost formula or a domain composition: error-protected
// qubits, resource-intensive gate count (T-count), and circuit depth.
// All counts are non-negative and CircuitDepth never exceeds GateCount.
type LogicalResources struct {
	// LogicalQubits is the width of the logical register.
	LogicalQubits int64 `json:"logical_qubits"`

	// GateCount is the total number of resource-intensive logical
	// operations, ceiling-rounded.
	GateCount int64 `json:"gate_count"`

	// CircuitDepth is the number of sequential logical time steps.
	CircuitDepth int64 `json:"circuit_depth"`

	// Capped marks counts that hit MaxCount; the figures are lower
	// bounds, not exact values.
	Capped bool `json:"capped,omitempty"`
}

// StageCost binds a named recipe stage to the logical resources its
// primitive requires. Stage costs feed the error budget breakdown.
type StageCost struct {
	// Stage is the display name of the recipe stage.
	Stage string `json:"stage"`

	// Resources is the stage's logical resource tuple.
	Resources LogicalResources `json:"resources"`
}

// QubitCycles returns the stage's share basis for error budget
// allocation: logical qubits times circuit depth.
func (s StageCost) QubitCycles() float64 {
	return float64(s.Resources.LogicalQubits) * float64(s.Resources.CircuitDepth)
}

// SurfaceCode describes the error correction configuration selected
// for an estimate. It is derived by the fault tolerance model, never
// set by the caller.
type SurfaceCode struct {
	// Distance is the selected code distance d: odd, at least 3.
	Distance int `json:"code_distance"`

	// PhysicalQubitsPerLogical is the surface code patch size 2d²,
	// including the syndrome extraction ancilla budget.
	PhysicalQubitsPerLogical int64 `json:"physical_qubits_per_logical"`

	// CycleTimeSeconds is the duration of one round of physical
	// syndrome extraction.
	CycleTimeSeconds float64 `json:"cycle_time_seconds"`
}

// Runtime is a wall-clock duration carrying both the exact value in
// seconds and a display form scaled to keep the magnitude between 1
// and 1000. The scaling is cosmetic; Seconds is the comparison value.
type Runtime struct {
	// Seconds is the exact runtime used for comparisons.
	Seconds float64 `json:"seconds"`

	// Value is the display magnitude in Unit.
	Value float64 `json:"value"`

	// Unit is the display time unit, e.g. "ms", "hours", "years".
	Unit string `json:"unit"`
}

// ResourceEstimate is the terminal, immutable output of one estimation
// call. It is created fresh per call, never mutated, and owned solely
// by the caller that requested it.
type ResourceEstimate struct {
	// Domain is the application domain the estimate was computed for.
	Domain Domain `json:"domain"`

	// Parameters echoes the validated input record.
	Parameters Parameters `json:"parameters"`

	// Feasible reports whether a fault-tolerant implementation exists
	// for the requested physical error rate.
	Feasible bool `json:"feasible"`

	// Reason explains infeasibility. Empty when Feasible is true.
	Reason string `json:"reason,omitempty"`

	// LogicalQubits is the composed logical register width.
	LogicalQubits int64 `json:"logical_qubits"`

	// PhysicalQubits is LogicalQubits × 2d². Zero when infeasible.
	PhysicalQubits int64 `json:"physical_qubits"`

	// TotalGates is the summed gate count across recipe stages.
	TotalGates int64 `json:"total_gates"`

	// CircuitDepth is the summed depth across recipe stages.
	CircuitDepth int64 `json:"circuit_depth"`

	// CodeDistance is the selected surface code distance. Zero when
	// infeasible.
	CodeDistance int `json:"code_distance,omitempty"`

	// EstimatedRuntime is CircuitDepth × d × cycle time.
	EstimatedRuntime Runtime `json:"estimated_runtime"`

	// ErrorBudget allocates the total failure probability across
	// recipe stages, proportional to each stage's logical qubit-cycles.
	// Fractions sum to 1.0 when feasible.
	ErrorBudget map[string]float64 `json:"error_budget_breakdown,omitempty"`

	// Stages lists the per-stage logical costs for detailed display.
	Stages []StageCost `json:"stages,omitempty"`

	// BlockEncodingAlpha is the domain's block encoding normalization
	// parameter α.
	BlockEncodingAlpha float64 `json:"block_encoding_alpha"`

	// SpaceOverhead is the physical-to-logical qubit ratio 2d².
	SpaceOverhead int64 `json:"space_overhead,omitempty"`

	// TimeOverhead is the logical-to-physical time ratio d.
	TimeOverhead int `json:"time_overhead,omitempty"`

	// GatesPerSecond is the effective logical gate rate
	// TotalGates / runtime. Zero when infeasible.
	GatesPerSecond float64 `json:"gates_per_second,omitempty"`

	// Capped marks estimates whose counts hit MaxCount and are lower
	// bounds too large to display precisely.
	Capped bool `json:"capped,omitempty"`
}
