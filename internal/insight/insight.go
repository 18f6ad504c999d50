// Package insight produces the optional narrative section of a risk
// report from an external text-generation collaborator. Failures here
// are never fatal: callers degrade to a report without the insight
// section.
package insight

import (
	"context"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// Generator writes a short narrative about the portfolio's risk posture.
type Generator interface {
	Narrative(ctx context.Context, summary schema.PortfolioSummary, top []schema.RiskAssessment) (string, error)
}

// Resolve asks the generator for a narrative and recovers any failure
// into "no insight available". A nil generator means insight is off.
func Resolve(ctx context.Context, gen Generator, summary schema.PortfolioSummary, top []schema.RiskAssessment) string {
	if gen == nil {
		return ""
	}
	narrative, err := gen.Narrative(ctx, summary, top)
	if err != nil {
		contract.LogWarn("insight generation failed, continuing without insight",
			&contract.CollaboratorError{Collaborator: "insight", Err: err})
		return ""
	}
	return narrative
}
