package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/internal/parquet"
	"github.com/amckenna/riskline/schema"
)

// writeAssessmentResults outputs ranked assessments, dispatching based
// on the output format configured.
func writeAssessmentResults(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := parquet.BuildAssessmentRows(limitAssessments(result.Assessments, cfg.ResultLimit), time.Now())
		if err := parquet.WriteAssessmentsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// limitAssessments applies the configured result limit.
func limitAssessments(assessments []schema.RiskAssessment, limit int) []schema.RiskAssessment {
	if limit > 0 && len(assessments) > limit {
		return assessments[:limit]
	}
	return assessments
}

// writeAssessmentTable generates and writes the human-readable table.
func writeAssessmentTable(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	assessments := limitAssessments(result.Assessments, cfg.ResultLimit)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "ID", "Name", "Score", "Severity", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i := range assessments {
		ra := &assessments[i]

		severity := contract.GetPlainLabel(ra.Severity)
		if cfg.UseColors {
			severity = contract.GetColorLabel(ra.Severity)
		}

		status := "On time"
		if ra.Activity.DelayImpactDays > 0 {
			status = schema.FormatDays(ra.Activity.DelayImpactDays) + " late"
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			ra.Activity.ID,
			schema.TruncateName(ra.Activity.Name, nameWidth),
			fmtFloat(ra.Score),
			severity,
			status,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(w, "Showing top %d of %d activities (critical path: %d, total EMV: %s, total delay: %s)\n",
		len(assessments), s.TotalActivities, s.CriticalPathCount,
		schema.FormatCurrency(s.TotalEMV), schema.FormatDays(s.TotalDelayDays)); err != nil {
		return err
	}
	if len(result.Rejections) > 0 {
		if _, err := fmt.Fprintf(w, "Rejected %d records during normalization\n", len(result.Rejections)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeAssessmentCSV writes ranked assessments in CSV format.
func writeAssessmentCSV(w io.Writer, result *schema.AnalysisResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"name",
		"work_package",
		"score",
		"severity",
		"probability",
		"cost_impact",
		"emv",
		"delay_impact_days",
		"total_float",
		"is_critical_path",
	}
	for _, key := range schema.FactorOrder {
		header = append(header, "factor_"+string(key))
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i := range result.Assessments {
			ra := &result.Assessments[i]
			a := &ra.Activity

			row := []string{
				strconv.Itoa(i + 1),
				a.ID,
				a.Name,
				a.WorkPackage,
				fmtFloat(ra.Score),
				contract.GetPlainLabel(ra.Severity),
				strconv.FormatFloat(a.Probability, 'f', 2, 64),
				fmtFloat(a.CostImpact),
				fmtFloat(a.EMV()),
				fmtFloat(a.DelayImpactDays),
				fmtFloat(a.TotalFloat),
				strconv.FormatBool(a.IsCriticalPath),
			}
			for _, key := range schema.FactorOrder {
				row = append(row, fmtFloat(ra.Factors[key]))
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// assessmentJSONView is the stable JSON envelope for analysis output.
type assessmentJSONView struct {
	Summary     schema.PortfolioSummary `json:"summary"`
	Assessments []schema.RiskAssessment `json:"assessments"`
	Rejections  []schema.Rejection      `json:"rejections,omitempty"`
}

// writeAssessmentJSON writes the full analysis result as indented JSON.
func writeAssessmentJSON(w io.Writer, result *schema.AnalysisResult) error {
	return writeJSON(w, assessmentJSONView{
		Summary:     result.Summary,
		Assessments: result.Assessments,
		Rejections:  result.Rejections,
	})
}
