// Package core has the risk scoring and report assembly pipeline:
// normalize -> factors/score -> aggregate/rank -> assemble.
package core

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/schema"
)

// Accepted date layouts for raw schedule fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// aliases maps each canonical field to its ordered list of accepted
// source names. The first present, non-null alias wins. Canonical names
// come first so that normalizing canonical input is idempotent.
var aliases = map[string][]string{
	"id":           {"id", "activity_id", "activityId", "task_id", "uid"},
	"name":         {"name", "activity_name", "task_name", "title"},
	"work_package": {"work_package", "workPackage", "wbs", "wbs_code"},

	"planned_start":      {"planned_start", "plannedStart", "start", "start_date"},
	"planned_finish":     {"planned_finish", "plannedFinish", "finish", "end_date", "finish_date"},
	"planned_duration":   {"planned_duration", "plannedDuration", "duration", "duration_days", "original_duration"},
	"remaining_duration": {"remaining_duration", "remainingDuration", "remaining_days"},
	"actual_start":       {"actual_start", "actualStart"},
	"actual_finish":      {"actual_finish", "actualFinish"},

	"baseline_start":    {"baseline_start", "baselineStart", "bl_start"},
	"baseline_finish":   {"baseline_finish", "baselineFinish", "bl_finish"},
	"baseline_duration": {"baseline_duration", "baselineDuration", "bl_duration"},

	"percent_complete": {"percent_complete", "percentComplete", "pct_complete", "progress"},
	"status":           {"status", "activity_status", "state"},

	"early_start":      {"early_start", "earlyStart", "es"},
	"early_finish":     {"early_finish", "earlyFinish", "ef"},
	"late_start":       {"late_start", "lateStart", "ls"},
	"late_finish":      {"late_finish", "lateFinish", "lf"},
	"total_float":      {"total_float", "totalFloat", "float", "slack", "total_slack"},
	"is_critical_path": {"is_critical_path", "isCriticalPath", "critical", "on_critical_path", "is_critical"},

	"predecessor_ids": {"predecessor_ids", "predecessorIds", "predecessors", "preds"},
	"successor_ids":   {"successor_ids", "successorIds", "successors", "succs"},
	"dependency_type": {"dependency_type", "dependencyType", "relation", "link_type"},

	"resource_id":      {"resource_id", "resourceId", "resource"},
	"role":             {"role", "resource_role"},
	"fte_allocation":   {"fte_allocation", "fteAllocation", "allocation", "units"},
	"resource_max_fte": {"resource_max_fte", "resourceMaxFte", "max_fte", "max_units"},
	"skill_tags":       {"skill_tags", "skillTags", "skills", "tags"},

	"probability":       {"probability", "risk_probability", "prob", "likelihood"},
	"cost_impact":       {"cost_impact", "costImpact", "cost", "impact_cost", "risk_cost"},
	"delay_impact_days": {"delay_impact_days", "delayImpactDays", "delay_days", "schedule_impact", "delay"},
}

// Normalize reconciles one raw record into a canonical Activity. Missing
// optional fields take their documented defaults; only a record without
// any usable identity is rejected.
func Normalize(rec schema.RawActivity) (schema.Activity, error) {
	id := rawString(rec, "id")
	name := rawString(rec, "name")
	if id == "" && name == "" {
		return schema.Activity{}, &contract.ValidationError{Reason: "missing identity: no usable id or name"}
	}
	if id == "" {
		id = name
	}
	if name == "" {
		name = id
	}

	a := schema.Activity{
		ID:          id,
		Name:        name,
		WorkPackage: rawString(rec, "work_package"),

		PlannedStart:      rawDate(rec, "planned_start"),
		PlannedFinish:     rawDate(rec, "planned_finish"),
		PlannedDuration:   rawFloat(rec, "planned_duration", 0),
		RemainingDuration: rawOptFloat(rec, "remaining_duration"),
		ActualStart:       rawDate(rec, "actual_start"),
		ActualFinish:      rawDate(rec, "actual_finish"),

		BaselineStart:    rawDate(rec, "baseline_start"),
		BaselineFinish:   rawDate(rec, "baseline_finish"),
		BaselineDuration: rawOptFloat(rec, "baseline_duration"),

		PercentComplete: clampRange(rawFloat(rec, "percent_complete", 0), 0, 100),
		Status:          rawString(rec, "status"),

		EarlyStart:     rawFloat(rec, "early_start", 0),
		EarlyFinish:    rawFloat(rec, "early_finish", 0),
		LateStart:      rawFloat(rec, "late_start", 0),
		LateFinish:     rawFloat(rec, "late_finish", 0),
		TotalFloat:     rawFloat(rec, "total_float", 0),
		IsCriticalPath: rawBool(rec, "is_critical_path"),

		PredecessorIDs: rawStringSet(rec, "predecessor_ids"),
		SuccessorIDs:   rawStringSet(rec, "successor_ids"),
		DependencyType: rawDependencyType(rec),

		ResourceID:     rawString(rec, "resource_id"),
		Role:           rawString(rec, "role"),
		FTEAllocation:  clampRange(rawFloat(rec, "fte_allocation", 100), 0, 100),
		ResourceMaxFTE: rawFloat(rec, "resource_max_fte", 1.0),
		SkillTags:      rawStringSet(rec, "skill_tags"),

		Probability:     clampRange(rawFloat(rec, "probability", 0.5), 0, 1),
		CostImpact:      clampRange(rawFloat(rec, "cost_impact", 0), 0, maxCurrency),
		DelayImpactDays: clampRange(rawFloat(rec, "delay_impact_days", 0), 0, maxDelayCap),
	}
	return a, nil
}

// NormalizeAll normalizes a full raw sequence, collecting per-record
// rejections instead of failing the run.
func NormalizeAll(records []schema.RawActivity) ([]schema.Activity, []schema.Rejection) {
	activities := make([]schema.Activity, 0, len(records))
	var rejections []schema.Rejection

	for i, rec := range records {
		a, err := Normalize(rec)
		if err != nil {
			var ve *contract.ValidationError
			if errors.As(err, &ve) {
				ve.Index = i
			}
			rejections = append(rejections, schema.Rejection{Index: i, Reason: err.Error()})
			continue
		}
		activities = append(activities, a)
	}
	return activities, rejections
}

// Normalization caps. Cost and delay stay finite so downstream sums
// cannot overflow into nonsense.
const (
	maxCurrency = 1e12
	maxDelayCap = 1e5
)

// lookup finds the first present, non-null alias value for a canonical field.
func lookup(rec schema.RawActivity, canonical string) (any, bool) {
	for _, alias := range aliases[canonical] {
		if v, ok := rec[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func rawString(rec schema.RawActivity, field string) string {
	v, ok := lookup(rec, field)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

func rawFloat(rec schema.RawActivity, field string, def float64) float64 {
	v, ok := lookup(rec, field)
	if !ok {
		return def
	}
	if f, ok := coerceFloat(v); ok {
		return f
	}
	return def
}

func rawOptFloat(rec schema.RawActivity, field string) *float64 {
	v, ok := lookup(rec, field)
	if !ok {
		return nil
	}
	if f, ok := coerceFloat(v); ok {
		return &f
	}
	return nil
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func rawBool(rec schema.RawActivity, field string) bool {
	v, ok := lookup(rec, field)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "yes" || s == "1"
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

func rawDate(rec schema.RawActivity, field string) *time.Time {
	v, ok := lookup(rec, field)
	if !ok {
		return nil
	}
	switch d := v.(type) {
	case time.Time:
		return &d
	case *time.Time:
		return d
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// rawStringSet reads a string set, deduplicates and sorts it so that
// canonical output is stable regardless of source ordering.
func rawStringSet(rec schema.RawActivity, field string) []string {
	v, ok := lookup(rec, field)
	if !ok {
		return nil
	}

	var items []string
	switch list := v.(type) {
	case []string:
		items = list
	case []any:
		for _, elem := range list {
			if s, ok := elem.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		if strings.TrimSpace(list) == "" {
			return nil
		}
		items = strings.Split(list, ";")
		if len(items) == 1 {
			items = strings.Split(list, ",")
		}
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return out
}

func rawDependencyType(rec schema.RawActivity) schema.DependencyType {
	dt := schema.DependencyType(strings.ToUpper(rawString(rec, "dependency_type")))
	if _, ok := schema.ValidDependencyTypes[dt]; !ok {
		return schema.FinishToStart
	}
	return dt
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
