package core

import (
	"context"
	"time"

	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/internal/insight"
	"github.com/amckenna/riskline/schema"
)

// RunAnalysis executes the full pipeline for one invocation:
// normalize -> factors/score -> aggregate/rank. Everything is
// recomputed from scratch; nothing is cached across runs. Rejected
// records are reported, never fatal, and an empty input yields an
// all-zero result.
func RunAnalysis(cfg *contract.Config, records []schema.RawActivity, store auditstore.Store) *schema.AnalysisResult {
	recordAuditEvent(store, auditstore.EventAnalysisStarted, map[string]any{
		"records": len(records),
	})
	startTime := time.Now()

	activities, rejections := NormalizeAll(records)
	assessments := AssessAll(activities, cfg)
	ranked := RankAssessments(assessments)
	summary := Summarize(ranked)

	recordAuditEvent(store, auditstore.EventAnalysisRun, map[string]any{
		"total":       summary.TotalActivities,
		"rejected":    len(rejections),
		"total_emv":   summary.TotalEMV,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	return &schema.AnalysisResult{
		Assessments: ranked,
		Summary:     summary,
		Rejections:  rejections,
	}
}

// BuildReport assembles the report document for an analysis result,
// weaving in the optional narrative. Insight failure degrades to a
// report without the insight section; it never fails the pipeline.
func BuildReport(ctx context.Context, cfg *contract.Config, result *schema.AnalysisResult, gen insight.Generator) schema.Report {
	narrative := insight.Resolve(ctx, gen, result.Summary, result.Assessments)
	return AssembleReport(result, cfg.Project, narrative, time.Now())
}

// recordAuditEvent emits one audit notification. A failing audit sink
// is reported but never fails the analysis.
func recordAuditEvent(store auditstore.Store, name string, payload map[string]any) {
	if store == nil {
		return
	}
	if _, err := store.RecordEvent(name, time.Now(), payload); err != nil {
		contract.LogWarn("audit event not recorded", err)
	}
}
