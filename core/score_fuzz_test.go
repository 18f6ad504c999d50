package core

import (
	"math"
	"testing"

	"github.com/amckenna/riskline/schema"
)

// FuzzComputeScore fuzzes the weighted sum with arbitrary factor values.
func FuzzComputeScore(f *testing.F) {
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0)
	f.Add(100.0, 100.0, 100.0, 100.0, 100.0)
	f.Add(25.0, 78.1, 10.0, 0.0, 100.0)
	f.Add(-50.0, 500.0, math.MaxFloat64, -math.MaxFloat64, 42.0)

	weights := schema.DefaultWeights()

	f.Fuzz(func(t *testing.T, schedule, cost, dependency, resource, criticalPath float64) {
		factors := map[schema.FactorKey]float64{
			schema.FactorSchedule:     schedule,
			schema.FactorCost:         cost,
			schema.FactorDependency:   dependency,
			schema.FactorResource:     resource,
			schema.FactorCriticalPath: criticalPath,
		}

		score := computeScore(factors, weights)
		if math.IsNaN(score) {
			// NaN inputs pass through the clamp untouched; they never
			// come from real factor computation.
			for _, v := range factors {
				if math.IsNaN(v) {
					return
				}
			}
			t.Fatalf("score is NaN for non-NaN factors")
		}
		if score < 0 || score > 100 {
			t.Fatalf("score %v out of [0,100]", score)
		}
	})
}
