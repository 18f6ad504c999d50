package core

import (
	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// computeScore combines clipped factor values into a single risk score
// using a fixed weighted sum. Weights sum to 1.0, so the score stays in
// [0,100] and is monotonic non-decreasing in every factor. A factor
// missing from the mapping contributes 0, never an error.
func computeScore(factors map[schema.FactorKey]float64, weights map[schema.FactorKey]float64) float64 {
	var score float64
	for _, key := range schema.FactorOrder {
		value := factors[key] // missing => 0
		score += weights[key] * clampRange(value, 0, 100)
	}
	return clampRange(score, 0, 100)
}

// Assess scores one activity: factors -> weighted score -> severity band.
func Assess(a schema.Activity, pctx PortfolioContext, cfg *contract.Config) schema.RiskAssessment {
	factors := ComputeFactors(&a, pctx)
	score := computeScore(factors, cfg.Weights)

	return schema.RiskAssessment{
		Activity: a,
		Factors:  factors,
		Score:    score,
		Severity: schema.SeverityForScore(score, cfg.Thresholds),
	}
}

// AssessAll scores the full activity set against one shared portfolio
// context. Output order matches input order; ranking happens later.
func AssessAll(activities []schema.Activity, cfg *contract.Config) []schema.RiskAssessment {
	pctx := BuildPortfolioContext(activities)

	assessments := make([]schema.RiskAssessment, 0, len(activities))
	for _, a := range activities {
		assessments = append(assessments, Assess(a, pctx, cfg))
	}
	return assessments
}
