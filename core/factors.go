package core

import (
	"math"

	"github.com/amckenna/riskline/schema"
)

// Tunable maxima to normalize risk inputs.
const (
	maxEMV       = 100000.0 // expected monetary value beyond this saturates
	maxDelayDays = 20.0     // delay impact beyond this saturates
	maxDeps      = 10.0     // predecessor+successor count beyond this saturates
	maxFloatDays = 15.0     // float beyond this reads as comfortably off the critical path
	overScale    = 1.0      // utilization of 2x capacity saturates the resource factor

	// Activities not flagged critical cap out just below the flagged
	// ones so the explicit CPM flag always dominates.
	nearCriticalCeiling = 90.0
)

// PortfolioContext carries the cross-activity inputs a factor is allowed
// to depend on. It is computed once per run and passed explicitly;
// factor computation itself never reads shared state.
type PortfolioContext struct {
	MaxTotalFloat float64
}

// BuildPortfolioContext derives the portfolio context from the full
// activity set.
func BuildPortfolioContext(activities []schema.Activity) PortfolioContext {
	var pctx PortfolioContext
	for i := range activities {
		if activities[i].TotalFloat > pctx.MaxTotalFloat {
			pctx.MaxTotalFloat = activities[i].TotalFloat
		}
	}
	return pctx
}

// ComputeFactors calculates the named risk factors for one activity.
// Every factor lands in [0,100]. Keys follow schema.FactorOrder.
func ComputeFactors(a *schema.Activity, pctx PortfolioContext) map[schema.FactorKey]float64 {
	return map[schema.FactorKey]float64{
		schema.FactorSchedule:     scheduleFactor(a),
		schema.FactorCost:         costFactor(a),
		schema.FactorDependency:   dependencyFactor(a),
		schema.FactorResource:     resourceFactor(a),
		schema.FactorCriticalPath: criticalPathFactor(a, pctx),
	}
}

// scheduleFactor measures slippage: declared delay impact, duration
// growth against baseline, and progress lagging the consumed duration.
// The strongest signal wins, so improving one input never raises the
// factor. Zero planned duration means no schedule signal at all.
func scheduleFactor(a *schema.Activity) float64 {
	if a.PlannedDuration <= 0 {
		return 0
	}

	delay := clamp01(a.DelayImpactDays / maxDelayDays)

	var slip float64
	if a.BaselineDuration != nil && *a.BaselineDuration > 0 {
		slip = clamp01((a.PlannedDuration - *a.BaselineDuration) / *a.BaselineDuration)
	}

	var lag float64
	if a.RemainingDuration != nil {
		expected := clamp01(1.0 - *a.RemainingDuration/a.PlannedDuration)
		lag = clamp01(expected - a.PercentComplete/100.0)
	}

	return 100.0 * max(delay, slip, lag)
}

// costFactor measures EMV exposure on a log scale so a handful of huge
// line items do not flatten everything else.
func costFactor(a *schema.Activity) float64 {
	emv := a.EMV()
	if emv <= 0 {
		return 0
	}
	return 100.0 * clamp01(math.Log1p(emv)/math.Log1p(maxEMV))
}

// dependencyFactor measures coupling: more predecessor/successor links
// mean more ways for slippage to propagate. Non finish-to-start
// relations add risk since they overlap work.
func dependencyFactor(a *schema.Activity) float64 {
	links := float64(len(a.PredecessorIDs) + len(a.SuccessorIDs))
	if links == 0 {
		return 0
	}

	base := clamp01(links / maxDeps)

	var bump float64
	switch a.DependencyType {
	case schema.StartToStart, schema.FinishToFinish:
		bump = 0.15
	case schema.StartToFinish:
		bump = 0.25
	}

	return 100.0 * clamp01(base+bump)
}

// resourceFactor measures overallocation of the assigned resource.
// Utilization at or under capacity contributes nothing.
func resourceFactor(a *schema.Activity) float64 {
	allocated := a.FTEAllocation / 100.0
	if allocated <= 0 {
		return 0
	}

	capacity := a.ResourceMaxFTE
	if capacity <= 0 {
		// Demand against zero declared capacity is maximal overallocation.
		return 100.0
	}

	over := (allocated/capacity - 1.0) / overScale
	return 100.0 * clamp01(over)
}

// criticalPathFactor measures proximity to the critical path. Flagged
// activities pin to 100; the rest scale by total float relative to the
// portfolio's largest observed float.
func criticalPathFactor(a *schema.Activity, pctx PortfolioContext) float64 {
	if a.IsCriticalPath {
		return 100.0
	}

	scale := pctx.MaxTotalFloat
	if scale <= 0 || scale > maxFloatDays {
		scale = maxFloatDays
	}

	slackRatio := clamp01(a.TotalFloat / scale)
	return nearCriticalCeiling * (1.0 - slackRatio)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
