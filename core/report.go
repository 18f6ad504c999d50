package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/amckenna/riskline/schema"
)

// Report layout policy.
const (
	rankedTableSize  = 10 // rows in the ranked risk table
	detailEntryCount = 5  // assessments expanded into detail blocks
	nameDisplayWidth = 28 // display truncation for activity names

	reportTitle     = "Project Risk Analysis"
	generatedByLine = "riskline risk analysis engine"

	// UnknownProject substitutes for missing project names in reports
	// and derived filenames.
	UnknownProject = "Unknown Project"
)

// AssembleReport turns an analysis result into the ordered, immutable
// section list a renderer consumes. Empty inputs still produce all
// mandatory sections; the insight section appears only when a narrative
// was supplied.
func AssembleReport(result *schema.AnalysisResult, meta schema.ProjectMeta, narrative string, generatedAt time.Time) schema.Report {
	projectName := meta.Name
	if projectName == "" {
		projectName = UnknownProject
	}

	sections := []schema.Section{
		schema.HeaderSection{
			Title:       reportTitle,
			ProjectName: projectName,
			GeneratedAt: generatedAt,
		},
		assembleSummary(result, meta),
		assembleRankedTable(result.Assessments),
		assembleDetails(result.Assessments),
	}

	if narrative != "" {
		sections = append(sections, schema.InsightSection{Narrative: narrative})
	}

	sections = append(sections, schema.FooterSection{
		GeneratedBy: generatedByLine,
		GeneratedAt: generatedAt,
	})

	return schema.Report{
		Project:     schema.ProjectMeta{Name: projectName, Budget: meta.Budget, DurationDays: meta.DurationDays},
		GeneratedAt: generatedAt,
		Sections:    sections,
	}
}

// assembleSummary builds the executive summary rows in their fixed,
// declared order.
func assembleSummary(result *schema.AnalysisResult, meta schema.ProjectMeta) schema.SummarySection {
	s := result.Summary

	budget := schema.FallbackNA
	if meta.Budget > 0 {
		budget = schema.FormatCurrency(meta.Budget)
	}
	duration := schema.FallbackNA
	if meta.DurationDays > 0 {
		duration = schema.FormatDays(meta.DurationDays)
	}

	return schema.SummarySection{Rows: []schema.SummaryRow{
		{Label: "Project Budget", Value: budget},
		{Label: "Project Duration", Value: duration},
		{Label: "Total Activities", Value: strconv.Itoa(s.TotalActivities)},
		{Label: "Critical Path Activities", Value: strconv.Itoa(s.CriticalPathCount)},
		{Label: "Critical Risks", Value: strconv.Itoa(s.SeverityCounts[schema.SeverityCritical])},
		{Label: "High Risks", Value: strconv.Itoa(s.SeverityCounts[schema.SeverityHigh])},
		{Label: "Medium Risks", Value: strconv.Itoa(s.SeverityCounts[schema.SeverityMedium])},
		{Label: "Low Risks", Value: strconv.Itoa(s.SeverityCounts[schema.SeverityLow])},
		{Label: "Total Risks", Value: strconv.Itoa(s.TotalActivities)},
		{Label: "Total EMV", Value: schema.FormatCurrency(s.TotalEMV)},
		{Label: "Total Delay", Value: schema.FormatDays(s.TotalDelayDays)},
	}}
}

// assembleRankedTable builds the top-N ranked risk table. The section
// is always present, even with zero rows.
func assembleRankedTable(ranked []schema.RiskAssessment) schema.RankedTableSection {
	limit := min(len(ranked), rankedTableSize)

	rows := make([]schema.RankedRow, 0, limit)
	for i := 0; i < limit; i++ {
		ra := &ranked[i]
		rows = append(rows, schema.RankedRow{
			Rank:     i + 1,
			ID:       ra.Activity.ID,
			Name:     schema.TruncateName(ra.Activity.Name, nameDisplayWidth),
			Score:    ra.Score,
			Severity: ra.Severity,
			Status:   delayStatus(ra.Activity.DelayImpactDays),
		})
	}
	return schema.RankedTableSection{Rows: rows}
}

// delayStatus derives the display status from the delay impact.
func delayStatus(delayDays float64) string {
	if delayDays > 0 {
		return schema.FormatDays(delayDays) + " late"
	}
	return "On time"
}

// assembleDetails expands the top-M assessments into their fixed
// labeled sub-blocks. Fallback text is part of the contract: dates and
// optional references render "N/A", a missing status renders "TBD" and
// empty sets render "None", regardless of which source fields existed.
func assembleDetails(ranked []schema.RiskAssessment) schema.DetailsSection {
	limit := min(len(ranked), detailEntryCount)

	entries := make([]schema.DetailEntry, 0, limit)
	for i := 0; i < limit; i++ {
		ra := &ranked[i]
		entries = append(entries, schema.DetailEntry{
			Rank:     i + 1,
			ID:       ra.Activity.ID,
			Name:     ra.Activity.Name,
			Score:    ra.Score,
			Severity: ra.Severity,
			Blocks:   detailBlocks(ra),
		})
	}
	return schema.DetailsSection{Entries: entries}
}

// detailBlocks renders the nine sub-blocks of one detail entry.
func detailBlocks(ra *schema.RiskAssessment) []schema.DetailBlock {
	a := &ra.Activity

	activityInfo := schema.DetailBlock{Title: "Activity Info", Fields: []schema.DetailField{
		{Label: "ID", Value: a.ID},
		{Label: "Name", Value: a.Name},
		{Label: "Work Package", Value: orFallback(a.WorkPackage, schema.FallbackNA)},
	}}

	sched := schema.DetailBlock{Title: "Schedule", Fields: []schema.DetailField{
		{Label: "Planned Start", Value: schema.FormatDate(a.PlannedStart)},
		{Label: "Planned Finish", Value: schema.FormatDate(a.PlannedFinish)},
		{Label: "Planned Duration", Value: schema.FormatDays(a.PlannedDuration)},
		{Label: "Remaining Duration", Value: optDays(a.RemainingDuration)},
		{Label: "Actual Start", Value: schema.FormatDate(a.ActualStart)},
		{Label: "Actual Finish", Value: schema.FormatDate(a.ActualFinish)},
	}}

	baseline := schema.DetailBlock{Title: "Baseline", Fields: []schema.DetailField{
		{Label: "Baseline Start", Value: schema.FormatDate(a.BaselineStart)},
		{Label: "Baseline Finish", Value: schema.FormatDate(a.BaselineFinish)},
		{Label: "Baseline Duration", Value: optDays(a.BaselineDuration)},
	}}

	progress := schema.DetailBlock{Title: "Progress", Fields: []schema.DetailField{
		{Label: "Percent Complete", Value: fmt.Sprintf("%.0f%%", a.PercentComplete)},
		{Label: "Status", Value: orFallback(a.Status, schema.FallbackTBD)},
	}}

	cpm := schema.DetailBlock{Title: "CPM Analysis", Fields: []schema.DetailField{
		{Label: "Early Start", Value: formatUnits(a.EarlyStart)},
		{Label: "Early Finish", Value: formatUnits(a.EarlyFinish)},
		{Label: "Late Start", Value: formatUnits(a.LateStart)},
		{Label: "Late Finish", Value: formatUnits(a.LateFinish)},
		{Label: "Total Float", Value: schema.FormatDays(a.TotalFloat)},
		{Label: "Critical Path", Value: yesNo(a.IsCriticalPath)},
	}}

	deps := schema.DetailBlock{Title: "Dependencies", Fields: []schema.DetailField{
		{Label: "Predecessors", Value: schema.FormatList(a.PredecessorIDs)},
		{Label: "Successors", Value: schema.FormatList(a.SuccessorIDs)},
		{Label: "Dependency Type", Value: string(a.DependencyType)},
	}}

	resources := schema.DetailBlock{Title: "Resources", Fields: []schema.DetailField{
		{Label: "Resource", Value: orFallback(a.ResourceID, schema.FallbackNA)},
		{Label: "Role", Value: orFallback(a.Role, schema.FallbackTBD)},
		{Label: "FTE Allocation", Value: fmt.Sprintf("%.0f%%", a.FTEAllocation)},
		{Label: "Max FTE", Value: fmt.Sprintf("%.1f", a.ResourceMaxFTE)},
		{Label: "Skill Tags", Value: schema.FormatList(a.SkillTags)},
	}}

	riskData := schema.DetailBlock{Title: "Risk Data", Fields: []schema.DetailField{
		{Label: "Probability", Value: fmt.Sprintf("%.2f", a.Probability)},
		{Label: "Cost Impact", Value: schema.FormatCurrency(a.CostImpact)},
		{Label: "Delay Impact", Value: schema.FormatDays(a.DelayImpactDays)},
		{Label: "EMV", Value: schema.FormatCurrency(a.EMV())},
	}}

	breakdown := schema.DetailBlock{Title: "Factor Breakdown"}
	for _, key := range schema.FactorOrder {
		breakdown.Fields = append(breakdown.Fields, schema.DetailField{
			Label: string(key),
			Value: fmt.Sprintf("%.1f", ra.Factors[key]),
		})
	}

	return []schema.DetailBlock{
		activityInfo, sched, baseline, progress, cpm, deps, resources, riskData, breakdown,
	}
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func optDays(v *float64) string {
	if v == nil {
		return schema.FallbackNA
	}
	return schema.FormatDays(*v)
}

func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
