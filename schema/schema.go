// Package schema has configs, models and shared constants for all parts of riskline.
package schema

import "time"

// RawActivity is one activity-like record as supplied by a loader.
// Field names may use any of the accepted aliases; values may be absent
// or null. The normalizer turns this into a canonical Activity.
type RawActivity map[string]any

// Activity is one canonical schedule line item. Optional fields use
// pointers so that "absent" stays distinguishable from zero; every
// non-pointer field has a deterministic default applied during
// normalization.
type Activity struct {
	// Identity
	ID          string `json:"id"`
	Name        string `json:"name"`
	WorkPackage string `json:"work_package,omitempty"`

	// Schedule
	PlannedStart      *time.Time `json:"planned_start,omitempty"`
	PlannedFinish     *time.Time `json:"planned_finish,omitempty"`
	PlannedDuration   float64    `json:"planned_duration"`
	RemainingDuration *float64   `json:"remaining_duration,omitempty"`
	ActualStart       *time.Time `json:"actual_start,omitempty"`
	ActualFinish      *time.Time `json:"actual_finish,omitempty"`

	// Baseline
	BaselineStart    *time.Time `json:"baseline_start,omitempty"`
	BaselineFinish   *time.Time `json:"baseline_finish,omitempty"`
	BaselineDuration *float64   `json:"baseline_duration,omitempty"`

	// Progress
	PercentComplete float64 `json:"percent_complete"`
	Status          string  `json:"status,omitempty"`

	// CPM
	EarlyStart     float64 `json:"early_start"`
	EarlyFinish    float64 `json:"early_finish"`
	LateStart      float64 `json:"late_start"`
	LateFinish     float64 `json:"late_finish"`
	TotalFloat     float64 `json:"total_float"`
	IsCriticalPath bool    `json:"is_critical_path"`

	// Dependencies
	PredecessorIDs []string       `json:"predecessor_ids,omitempty"`
	SuccessorIDs   []string       `json:"successor_ids,omitempty"`
	DependencyType DependencyType `json:"dependency_type"`

	// Resources
	ResourceID     string   `json:"resource_id,omitempty"`
	Role           string   `json:"role,omitempty"`
	FTEAllocation  float64  `json:"fte_allocation"`
	ResourceMaxFTE float64  `json:"resource_max_fte"`
	SkillTags      []string `json:"skill_tags,omitempty"`

	// Risk inputs
	Probability     float64 `json:"probability"`
	CostImpact      float64 `json:"cost_impact"`
	DelayImpactDays float64 `json:"delay_impact_days"`
}

// EMV returns the expected monetary value for the activity.
func (a *Activity) EMV() float64 {
	return a.Probability * a.CostImpact
}

// RiskAssessment holds the derived risk view of one activity. It is
// created once by the scorer and never mutated afterwards.
type RiskAssessment struct {
	Activity Activity              `json:"activity"`
	Factors  map[FactorKey]float64 `json:"factors"`
	Score    float64               `json:"score"`
	Severity Severity              `json:"severity"`
}

// PortfolioSummary holds portfolio-level metrics for one analysis run.
type PortfolioSummary struct {
	TotalActivities   int              `json:"total_activities"`
	CriticalPathCount int              `json:"critical_path_count"`
	SeverityCounts    map[Severity]int `json:"severity_counts"`
	TotalEMV          float64          `json:"total_emv"`
	TotalDelayDays    float64          `json:"total_delay_days"`
}

// Rejection records one raw record that normalization refused, with the
// reason it was unusable.
type Rejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// AnalysisResult bundles everything one analysis run produces.
type AnalysisResult struct {
	Assessments []RiskAssessment `json:"assessments"` // ranked, highest risk first
	Summary     PortfolioSummary `json:"summary"`
	Rejections  []Rejection      `json:"rejections,omitempty"`
}

// ProjectMeta is the optional project metadata shown in report headers.
type ProjectMeta struct {
	Name         string  `json:"name,omitempty"`
	Budget       float64 `json:"budget,omitempty"`
	DurationDays float64 `json:"duration_days,omitempty"`
}
