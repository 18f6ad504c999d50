package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amckenna/riskline/schema"
)

func assessmentFixture() []schema.RiskAssessment {
	return []schema.RiskAssessment{
		{
			Activity: schema.Activity{
				ID:              "A110",
				Name:            "Foundation pour",
				WorkPackage:     "WP-01",
				Probability:     0.7,
				CostImpact:      80000,
				DelayImpactDays: 6,
				TotalFloat:      0,
				IsCriticalPath:  true,
			},
			Factors: map[schema.FactorKey]float64{
				schema.FactorSchedule:     30,
				schema.FactorCost:         78,
				schema.FactorDependency:   10,
				schema.FactorResource:     20,
				schema.FactorCriticalPath: 100,
			},
			Score:    68.2,
			Severity: schema.SeverityHigh,
		},
		{
			Activity: schema.Activity{ID: "A200", Name: "Landscaping"},
			Factors:  map[schema.FactorKey]float64{},
			Score:    12.0,
			Severity: schema.SeverityLow,
		},
	}
}

// TestBuildAssessmentRows verifies the flattened columnar view.
func TestBuildAssessmentRows(t *testing.T) {
	analyzedAt := time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)
	rows := BuildAssessmentRows(assessmentFixture(), analyzedAt)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, int32(1), first.Rank)
	assert.Equal(t, "A110", first.ActivityID)
	require.NotNil(t, first.WorkPackage)
	assert.Equal(t, "WP-01", *first.WorkPackage)
	assert.Equal(t, "high", first.Severity)
	assert.InDelta(t, 56000.0, first.EMV, 0.001)
	assert.Equal(t, 100.0, first.FactorCriticalPath)
	assert.True(t, first.IsCriticalPath)
	assert.Equal(t, analyzedAt, first.AnalyzedAt)

	second := rows[1]
	assert.Equal(t, int32(2), second.Rank)
	assert.Nil(t, second.WorkPackage)
	assert.Zero(t, second.EMV)
}

// TestWriteAssessmentsParquet round-trips rows through a real file.
func TestWriteAssessmentsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessments.parquet")
	rows := BuildAssessmentRows(assessmentFixture(), time.Now())
	require.NoError(t, WriteAssessmentsParquet(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	require.NoError(t, err)

	readBack, err := parquet.Read[AssessmentRow](f, info.Size())
	require.NoError(t, err)
	require.Len(t, readBack, len(rows))
	assert.Equal(t, "A110", readBack[0].ActivityID)
	assert.InDelta(t, 68.2, readBack[0].Score, 0.001)
}
