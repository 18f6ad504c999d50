package core

import (
	"sort"
	"strings"

	"github.com/amckenna/riskline/schema"
)

// RankAssessments sorts assessments by risk score in descending order.
// Ties break by descending cost impact, then ascending activity ID, so
// the ordering is total: no two assessments ever compare equal.
func RankAssessments(assessments []schema.RiskAssessment) []schema.RiskAssessment {
	ranked := make([]schema.RiskAssessment, len(assessments))
	copy(ranked, assessments)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Activity.CostImpact != ranked[j].Activity.CostImpact {
			return ranked[i].Activity.CostImpact > ranked[j].Activity.CostImpact
		}
		return idLess(ranked[i].Activity.ID, ranked[j].Activity.ID)
	})
	return ranked
}

// idLess orders activity IDs with embedded digit runs compared by
// numeric value, so "A2" precedes "A10". Non-digit runs compare
// bytewise. IDs differing only in leading zeros fall back to a plain
// string comparison to keep the order total.
func idLess(a, b string) bool {
	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		ca, cb := a[ia], b[ib]
		if isDigit(ca) && isDigit(cb) {
			ja, jb := ia, ib
			for ja < len(a) && isDigit(a[ja]) {
				ja++
			}
			for jb < len(b) && isDigit(b[jb]) {
				jb++
			}
			na := strings.TrimLeft(a[ia:ja], "0")
			nb := strings.TrimLeft(b[ib:jb], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			ia, ib = ja, jb
			continue
		}
		if ca != cb {
			return ca < cb
		}
		ia++
		ib++
	}
	if len(a)-ia != len(b)-ib {
		return len(a)-ia < len(b)-ib
	}
	return a < b
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Summarize derives portfolio-level metrics from the full assessment
// sequence. Totals are exact sums; zero-impact activities still count.
// The empty sequence yields an all-zero summary.
func Summarize(assessments []schema.RiskAssessment) schema.PortfolioSummary {
	summary := schema.PortfolioSummary{
		SeverityCounts: make(map[schema.Severity]int, len(schema.AllSeverities)),
	}
	for _, sev := range schema.AllSeverities {
		summary.SeverityCounts[sev] = 0
	}

	for i := range assessments {
		a := &assessments[i].Activity
		summary.TotalActivities++
		if a.IsCriticalPath {
			summary.CriticalPathCount++
		}
		summary.SeverityCounts[assessments[i].Severity]++
		summary.TotalEMV += a.EMV()
		summary.TotalDelayDays += a.DelayImpactDays
	}
	return summary
}
