package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amckenna/riskline/schema"
)

// TestComputeFactorsRange ensures every factor lands in [0,100] across
// representative activities.
func TestComputeFactorsRange(t *testing.T) {
	nine := 9.0
	twelve := 12.0

	activities := []schema.Activity{
		{ID: "empty"},
		{
			ID:                "loaded",
			PlannedDuration:   10,
			BaselineDuration:  &nine,
			RemainingDuration: &twelve,
			PercentComplete:   10,
			Probability:       1.0,
			CostImpact:        1e9,
			DelayImpactDays:   500,
			PredecessorIDs:    []string{"a", "b", "c", "d", "e", "f"},
			SuccessorIDs:      []string{"g", "h", "i", "j", "k", "l"},
			DependencyType:    schema.StartToFinish,
			FTEAllocation:     100,
			ResourceMaxFTE:    0.1,
			IsCriticalPath:    true,
		},
	}

	pctx := BuildPortfolioContext(activities)
	for _, a := range activities {
		t.Run(a.ID, func(t *testing.T) {
			factors := ComputeFactors(&a, pctx)
			assert.Len(t, factors, len(schema.FactorOrder))
			for _, key := range schema.FactorOrder {
				value, ok := factors[key]
				assert.True(t, ok, "missing factor %s", key)
				assert.GreaterOrEqual(t, value, 0.0, "factor %s", key)
				assert.LessOrEqual(t, value, 100.0, "factor %s", key)
			}
		})
	}
}

// TestScheduleFactor tests the slippage signals individually.
func TestScheduleFactor(t *testing.T) {
	baseline := 10.0
	remaining := 5.0

	tests := []struct {
		name     string
		activity schema.Activity
		expected float64
		delta    float64
	}{
		{
			name:     "zero planned duration means no signal",
			activity: schema.Activity{DelayImpactDays: 50},
			expected: 0,
			delta:    0.001,
		},
		{
			name:     "declared delay saturates",
			activity: schema.Activity{PlannedDuration: 10, DelayImpactDays: 40},
			expected: 100,
			delta:    0.001,
		},
		{
			name:     "partial delay scales linearly",
			activity: schema.Activity{PlannedDuration: 10, DelayImpactDays: 5},
			expected: 25,
			delta:    0.001,
		},
		{
			name: "baseline slip",
			activity: schema.Activity{
				PlannedDuration:  12,
				BaselineDuration: &baseline,
			},
			expected: 20,
			delta:    0.001,
		},
		{
			name: "progress lag",
			activity: schema.Activity{
				PlannedDuration:   10,
				RemainingDuration: &remaining,
				PercentComplete:   20,
			},
			expected: 30,
			delta:    0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, scheduleFactor(&tt.activity), tt.delta)
		})
	}
}

// TestCostFactor verifies the log-scaled EMV mapping.
func TestCostFactor(t *testing.T) {
	t.Run("zero exposure", func(t *testing.T) {
		a := schema.Activity{Probability: 0.9}
		assert.Equal(t, 0.0, costFactor(&a))
	})

	t.Run("saturates at the cap", func(t *testing.T) {
		a := schema.Activity{Probability: 1.0, CostImpact: 1e9}
		assert.Equal(t, 100.0, costFactor(&a))
	})

	t.Run("monotonic in exposure", func(t *testing.T) {
		small := schema.Activity{Probability: 0.5, CostImpact: 1000}
		big := schema.Activity{Probability: 0.5, CostImpact: 50000}
		assert.Less(t, costFactor(&small), costFactor(&big))
	})
}

// TestDependencyFactor tests link counting and relation bumps.
func TestDependencyFactor(t *testing.T) {
	t.Run("no links", func(t *testing.T) {
		a := schema.Activity{DependencyType: schema.StartToFinish}
		assert.Equal(t, 0.0, dependencyFactor(&a))
	})

	t.Run("links scale to the cap", func(t *testing.T) {
		a := schema.Activity{
			PredecessorIDs: []string{"1", "2", "3"},
			SuccessorIDs:   []string{"4", "5"},
			DependencyType: schema.FinishToStart,
		}
		assert.InDelta(t, 50.0, dependencyFactor(&a), 0.001)
	})

	t.Run("overlapping relations add risk", func(t *testing.T) {
		fs := schema.Activity{PredecessorIDs: []string{"1"}, DependencyType: schema.FinishToStart}
		ss := schema.Activity{PredecessorIDs: []string{"1"}, DependencyType: schema.StartToStart}
		sf := schema.Activity{PredecessorIDs: []string{"1"}, DependencyType: schema.StartToFinish}
		assert.Less(t, dependencyFactor(&fs), dependencyFactor(&ss))
		assert.Less(t, dependencyFactor(&ss), dependencyFactor(&sf))
	})
}

// TestResourceFactor tests overallocation measurement.
func TestResourceFactor(t *testing.T) {
	tests := []struct {
		name     string
		activity schema.Activity
		expected float64
	}{
		{
			name:     "no allocation",
			activity: schema.Activity{FTEAllocation: 0, ResourceMaxFTE: 1},
			expected: 0,
		},
		{
			name:     "at capacity",
			activity: schema.Activity{FTEAllocation: 100, ResourceMaxFTE: 1},
			expected: 0,
		},
		{
			name:     "fifty percent over",
			activity: schema.Activity{FTEAllocation: 75, ResourceMaxFTE: 0.5},
			expected: 50,
		},
		{
			name:     "double capacity saturates",
			activity: schema.Activity{FTEAllocation: 100, ResourceMaxFTE: 0.5},
			expected: 100,
		},
		{
			name:     "zero declared capacity",
			activity: schema.Activity{FTEAllocation: 10, ResourceMaxFTE: 0},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, resourceFactor(&tt.activity), 0.001)
		})
	}
}

// TestCriticalPathFactor verifies the flag dominates proximity scaling.
func TestCriticalPathFactor(t *testing.T) {
	pctx := PortfolioContext{MaxTotalFloat: 10}

	t.Run("flagged pins to 100", func(t *testing.T) {
		a := schema.Activity{IsCriticalPath: true, TotalFloat: 50}
		assert.Equal(t, 100.0, criticalPathFactor(&a, pctx))
	})

	t.Run("zero float caps below flagged", func(t *testing.T) {
		a := schema.Activity{TotalFloat: 0}
		assert.Equal(t, nearCriticalCeiling, criticalPathFactor(&a, pctx))
	})

	t.Run("max float reads as safe", func(t *testing.T) {
		a := schema.Activity{TotalFloat: 10}
		assert.Equal(t, 0.0, criticalPathFactor(&a, pctx))
	})

	t.Run("empty portfolio context falls back to default scale", func(t *testing.T) {
		a := schema.Activity{TotalFloat: 15}
		assert.Equal(t, 0.0, criticalPathFactor(&a, PortfolioContext{}))
	})
}

// TestBuildPortfolioContext verifies cross-activity derivation.
func TestBuildPortfolioContext(t *testing.T) {
	activities := []schema.Activity{
		{TotalFloat: 3},
		{TotalFloat: 8},
		{TotalFloat: 1},
	}
	pctx := BuildPortfolioContext(activities)
	assert.Equal(t, 8.0, pctx.MaxTotalFloat)

	assert.Equal(t, 0.0, BuildPortfolioContext(nil).MaxTotalFloat)
}
