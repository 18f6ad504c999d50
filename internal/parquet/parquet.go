// Package parquet exports risk assessment data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/amckenna/riskline/schema"
)

// AssessmentRow is the flattened, columnar view of one RiskAssessment.
type AssessmentRow struct {
	// Rank is the position in the ranked ordering, starting at 1
	Rank int32 `parquet:"rank,snappy"`

	// ActivityID is the canonical activity identifier
	ActivityID string `parquet:"activity_id,snappy"`

	// ActivityName is the untruncated activity name
	ActivityName string `parquet:"activity_name,snappy"`

	// WorkPackage is the owning work package (nullable)
	WorkPackage *string `parquet:"work_package,optional,snappy"`

	// Score is the combined risk score (0-100)
	Score float64 `parquet:"score,snappy"`

	// Severity is the severity band label
	Severity string `parquet:"severity,snappy"`

	// FactorSchedule through FactorCriticalPath are the factor values (0-100)
	FactorSchedule     float64 `parquet:"factor_schedule,snappy"`
	FactorCost         float64 `parquet:"factor_cost,snappy"`
	FactorDependency   float64 `parquet:"factor_dependency,snappy"`
	FactorResource     float64 `parquet:"factor_resource,snappy"`
	FactorCriticalPath float64 `parquet:"factor_critical_path,snappy"`

	// Probability is the risk probability (0-1)
	Probability float64 `parquet:"probability,snappy"`

	// CostImpact is the cost impact in currency units
	CostImpact float64 `parquet:"cost_impact,snappy"`

	// DelayImpactDays is the schedule impact in days
	DelayImpactDays float64 `parquet:"delay_impact_days,snappy"`

	// EMV is probability * cost impact
	EMV float64 `parquet:"emv,snappy"`

	// TotalFloat is the CPM total float in days
	TotalFloat float64 `parquet:"total_float,snappy"`

	// IsCriticalPath marks activities on the critical path
	IsCriticalPath bool `parquet:"is_critical_path,snappy"`

	// AnalyzedAt is when the analysis ran (stored as TIMESTAMP)
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`
}

// BuildAssessmentRows flattens ranked assessments for columnar export.
func BuildAssessmentRows(assessments []schema.RiskAssessment, analyzedAt time.Time) []AssessmentRow {
	rows := make([]AssessmentRow, 0, len(assessments))
	for i := range assessments {
		ra := &assessments[i]
		a := &ra.Activity

		var workPackage *string
		if a.WorkPackage != "" {
			wp := a.WorkPackage
			workPackage = &wp
		}

		rows = append(rows, AssessmentRow{
			Rank:               int32(i + 1),
			ActivityID:         a.ID,
			ActivityName:       a.Name,
			WorkPackage:        workPackage,
			Score:              ra.Score,
			Severity:           string(ra.Severity),
			FactorSchedule:     ra.Factors[schema.FactorSchedule],
			FactorCost:         ra.Factors[schema.FactorCost],
			FactorDependency:   ra.Factors[schema.FactorDependency],
			FactorResource:     ra.Factors[schema.FactorResource],
			FactorCriticalPath: ra.Factors[schema.FactorCriticalPath],
			Probability:        a.Probability,
			CostImpact:         a.CostImpact,
			DelayImpactDays:    a.DelayImpactDays,
			EMV:                a.EMV(),
			TotalFloat:         a.TotalFloat,
			IsCriticalPath:     a.IsCriticalPath,
			AnalyzedAt:         analyzedAt,
		})
	}
	return rows
}

// WriteAssessmentsParquet writes assessment rows to a Parquet file.
func WriteAssessmentsParquet(data []AssessmentRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AssessmentRow struct tags
	writer := parquet.NewGenericWriter[AssessmentRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
