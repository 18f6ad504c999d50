package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/insight"
	"github.com/amckenna/riskline/schema"
)

// TestRunAnalysis exercises the full pipeline end to end.
func TestRunAnalysis(t *testing.T) {
	cfg := testConfig()
	records := []schema.RawActivity{
		{"id": "A1", "name": "Dredging", "critical": true, "prob": 0.9, "cost": 80000.0, "delay": 12.0},
		{"id": "A2", "name": "Permitting", "slack": 20.0, "prob": 0.1, "cost": 500.0},
		{"duration": 5.0}, // no identity
	}

	store := auditstore.NewMockStore()
	result := RunAnalysis(cfg, records, store)

	require.Len(t, result.Assessments, 2)
	assert.Equal(t, "A1", result.Assessments[0].Activity.ID)
	assert.Len(t, result.Rejections, 1)
	assert.Equal(t, 2, result.Summary.TotalActivities)
	assert.Equal(t, 1, result.Summary.CriticalPathCount)

	names := store.Names()
	require.Len(t, names, 2)
	assert.Equal(t, auditstore.EventAnalysisStarted, names[0])
	assert.Equal(t, auditstore.EventAnalysisRun, names[1])
}

// TestRunAnalysisEmpty verifies empty input yields an all-zero result.
func TestRunAnalysisEmpty(t *testing.T) {
	result := RunAnalysis(testConfig(), nil, nil)
	assert.Empty(t, result.Assessments)
	assert.Empty(t, result.Rejections)
	assert.Equal(t, 0, result.Summary.TotalActivities)
	assert.Equal(t, 0.0, result.Summary.TotalEMV)
}

// TestRunAnalysisNilStore verifies the pipeline runs without an audit sink.
func TestRunAnalysisNilStore(t *testing.T) {
	result := RunAnalysis(testConfig(), []schema.RawActivity{{"id": "A1"}}, nil)
	assert.Len(t, result.Assessments, 1)
}

// stubGenerator returns a canned narrative or error.
type stubGenerator struct {
	narrative string
	err       error
}

func (s *stubGenerator) Narrative(context.Context, schema.PortfolioSummary, []schema.RiskAssessment) (string, error) {
	return s.narrative, s.err
}

// TestBuildReport verifies narrative wiring into the assembled report.
func TestBuildReport(t *testing.T) {
	cfg := testConfig()
	cfg.Project = schema.ProjectMeta{Name: "Terminal Upgrade"}
	result := RunAnalysis(cfg, []schema.RawActivity{{"id": "A1", "critical": true}}, nil)

	t.Run("with generator", func(t *testing.T) {
		var gen insight.Generator = &stubGenerator{narrative: "Schedule risk dominates."}
		report := BuildReport(context.Background(), cfg, result, gen)
		require.Len(t, report.Sections, 6)
		assert.Equal(t, schema.InsightKind, report.Sections[4].Kind())
	})

	t.Run("nil generator", func(t *testing.T) {
		report := BuildReport(context.Background(), cfg, result, nil)
		assert.Len(t, report.Sections, 5)
	})

	t.Run("failing generator degrades", func(t *testing.T) {
		var gen insight.Generator = &stubGenerator{err: assert.AnError}
		report := BuildReport(context.Background(), cfg, result, gen)
		assert.Len(t, report.Sections, 5)
	})

	t.Run("generation time is stamped", func(t *testing.T) {
		before := time.Now()
		report := BuildReport(context.Background(), cfg, result, nil)
		assert.False(t, report.GeneratedAt.Before(before))
	})
}
