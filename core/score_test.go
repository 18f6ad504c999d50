package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// testConfig returns a validated config with default weights and
// thresholds for use across core tests.
func testConfig() *contract.Config {
	return &contract.Config{
		ResultLimit: contract.DefaultResultLimit,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
		Weights:     schema.DefaultWeights(),
		Thresholds:  schema.DefaultThresholds(),
	}
}

// TestComputeScore tests the weighted combination of factors.
func TestComputeScore(t *testing.T) {
	weights := schema.DefaultWeights()

	tests := []struct {
		name     string
		factors  map[schema.FactorKey]float64
		expected float64
		delta    float64
	}{
		{
			name:     "all zero",
			factors:  map[schema.FactorKey]float64{},
			expected: 0,
			delta:    0.001,
		},
		{
			name: "all maxed",
			factors: map[schema.FactorKey]float64{
				schema.FactorSchedule:     100,
				schema.FactorCost:         100,
				schema.FactorDependency:   100,
				schema.FactorResource:     100,
				schema.FactorCriticalPath: 100,
			},
			expected: 100,
			delta:    0.001,
		},
		{
			name: "single factor weighted",
			factors: map[schema.FactorKey]float64{
				schema.FactorCriticalPath: 100,
			},
			expected: 35,
			delta:    0.001,
		},
		{
			name: "missing factors contribute zero",
			factors: map[schema.FactorKey]float64{
				schema.FactorSchedule: 40,
			},
			expected: 10,
			delta:    0.001,
		},
		{
			name: "out of range factors are clipped",
			factors: map[schema.FactorKey]float64{
				schema.FactorSchedule:     500,
				schema.FactorCost:         -50,
				schema.FactorDependency:   100,
				schema.FactorResource:     100,
				schema.FactorCriticalPath: 100,
			},
			expected: 25 + 0 + 10 + 10 + 35,
			delta:    0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, computeScore(tt.factors, weights), tt.delta)
		})
	}
}

// TestComputeScoreMonotonic verifies raising any factor never lowers the score.
func TestComputeScoreMonotonic(t *testing.T) {
	weights := schema.DefaultWeights()
	base := map[schema.FactorKey]float64{
		schema.FactorSchedule:     30,
		schema.FactorCost:         30,
		schema.FactorDependency:   30,
		schema.FactorResource:     30,
		schema.FactorCriticalPath: 30,
	}
	baseScore := computeScore(base, weights)

	for _, key := range schema.FactorOrder {
		raised := make(map[schema.FactorKey]float64, len(base))
		for k, v := range base {
			raised[k] = v
		}
		raised[key] += 40
		assert.GreaterOrEqual(t, computeScore(raised, weights), baseScore, "factor %s", key)
	}
}

// TestAssessHighExposure verifies a probable, costly, already-late
// critical activity lands in at least the high band.
func TestAssessHighExposure(t *testing.T) {
	cfg := testConfig()
	a := schema.Activity{
		ID:              "A1",
		Name:            "Structural steel delivery",
		PlannedDuration: 20,
		Probability:     0.8,
		CostImpact:      10000,
		DelayImpactDays: 5,
		IsCriticalPath:  true,
		FTEAllocation:   100,
		ResourceMaxFTE:  1,
	}

	assessment := Assess(a, PortfolioContext{}, cfg)
	assert.InDelta(t, 8000.0, assessment.Activity.EMV(), 0.001)
	assert.GreaterOrEqual(t, assessment.Score, cfg.Thresholds[schema.SeverityHigh])
	assert.Contains(t, []schema.Severity{schema.SeverityHigh, schema.SeverityCritical}, assessment.Severity)
}

// TestAssessAll verifies output order matches input order before ranking.
func TestAssessAll(t *testing.T) {
	cfg := testConfig()
	activities := []schema.Activity{
		{ID: "A1", FTEAllocation: 100, ResourceMaxFTE: 1},
		{ID: "A2", IsCriticalPath: true, FTEAllocation: 100, ResourceMaxFTE: 1},
	}

	assessments := AssessAll(activities, cfg)
	assert.Len(t, assessments, 2)
	assert.Equal(t, "A1", assessments[0].Activity.ID)
	assert.Equal(t, "A2", assessments[1].Activity.ID)
	assert.Greater(t, assessments[1].Score, assessments[0].Score)
}
