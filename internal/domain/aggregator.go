package domain

import "math"

// Aggregation inputs assembled by the pipeline for one estimate.
// Composition holds the merged logical tuple, Stages the per-stage
// costs it was merged from, and Alpha the domain's block encoding
// normalization.
type AggregationInput struct {
	Parameters  Parameters
	Composition LogicalResources
	Stages      []StageCost
	Alpha       float64
}

// ResourceAggregator assembles final ResourceEstimate values from the
// outputs of the composition and fault tolerance stages. It is
// stateless and safe for concurrent use.
type ResourceAggregator struct{}

// NewResourceAggregator creates a ResourceAggregator.
func NewResourceAggregator() *ResourceAggregator { return &ResourceAggregator{} }

// Aggregate combines the logical composition with a selected surface
// code into a feasible estimate: physical totals, runtime scaled to a
// display unit, overhead ratios, and the per-stage error budget
// breakdown.
func (a *ResourceAggregator) Aggregate(in AggregationInput, code SurfaceCode) ResourceEstimate {
	est := a.base(in)
	est.Feasible = true
	est.CodeDistance = code.Distance
	est.SpaceOverhead = code.PhysicalQubitsPerLogical
	est.TimeOverhead = code.Distance
	est.PhysicalQubits = mulCapped(in.Composition.LogicalQubits, code.PhysicalQubitsPerLogical)

	runtimeSeconds := float64(in.Composition.CircuitDepth) *
		float64(code.Distance) * code.CycleTimeSeconds
	est.EstimatedRuntime = ScaleRuntime(runtimeSeconds)
	if runtimeSeconds > 0 {
		est.GatesPerSecond = float64(in.Composition.GateCount) / runtimeSeconds
	}
	est.ErrorBudget = errorBudgetBreakdown(in.Stages)
	return est
}

// AggregateInfeasible assembles an estimate for parameters with no
// valid code distance. The logical figures are still reported so the
// caller can show partial insight alongside the infeasibility flag.
func (a *ResourceAggregator) AggregateInfeasible(in AggregationInput, reason string) ResourceEstimate {
	est := a.base(in)
	est.Feasible = false
	est.Reason = reason
	return est
}

// base fills the fields common to feasible and infeasible estimates.
func (a *ResourceAggregator) base(in AggregationInput) ResourceEstimate {
	return ResourceEstimate{
		Domain:             in.Parameters.Domain,
		Parameters:         in.Parameters,
		LogicalQubits:      in.Composition.LogicalQubits,
		TotalGates:         in.Composition.GateCount,
		CircuitDepth:       in.Composition.CircuitDepth,
		Stages:             in.Stages,
		BlockEncodingAlpha: in.Alpha,
		Capped:             in.Composition.Capped,
	}
}

// errorBudgetBreakdown allocates the failure budget across stages in
// proportion to each stage's logical qubit-cycles. The fractions sum
// to 1.0 up to floating point rounding. A degenerate composition with
// zero cycles everywhere splits the budget evenly.
func errorBudgetBreakdown(stages []StageCost) map[string]float64 {
	if len(stages) == 0 {
		return nil
	}

	total := 0.0
	for _, s := range stages {
		total += s.QubitCycles()
	}

	breakdown := make(map[string]float64, len(stages))
	if total == 0 || math.IsInf(total, 1) {
		even := 1.0 / float64(len(stages))
		for _, s := range stages {
			breakdown[s.Stage] = even
		}
		return breakdown
	}

	for _, s := range stages {
		breakdown[s.Stage] = s.QubitCycles() / total
	}
	return breakdown
}

// mulCapped multiplies two non-negative counts, capping at MaxCount
// instead of overflowing.
func mulCapped(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > MaxCount/b {
		return MaxCount
	}
	return a * b
}
