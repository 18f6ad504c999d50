package loader

import "github.com/amckenna/riskline/schema"

// SampleRecords returns a small deterministic portfolio used for demos
// and as a smoke input when no file is supplied. Field names mix
// canonical and alias spellings on purpose, so the sample also
// exercises the normalizer.
func SampleRecords() []schema.RawActivity {
	return []schema.RawActivity{
		{
			"id": "A100", "name": "Foundation excavation",
			"work_package": "WP-01", "planned_duration": 15.0,
			"baseline_duration": 12.0, "percent_complete": 100.0,
			"status": "Complete", "total_float": 0.0, "is_critical_path": true,
			"successor_ids": []string{"A110"},
			"resource_id":   "CREW-EX", "role": "Excavation crew",
			"probability": 0.3, "cost_impact": 25000.0, "delay_impact_days": 0.0,
		},
		{
			"activityId": "A110", "task_name": "Foundation pour",
			"workPackage": "WP-01", "duration": 10.0,
			"remaining_days": 6.0, "pct_complete": 30.0,
			"state": "In Progress", "slack": 0.0, "critical": true,
			"preds": "A100", "succs": "A120",
			"resource": "CREW-CONC", "allocation": 120.0, "max_units": 1.0,
			"likelihood": 0.7, "risk_cost": 80000.0, "delay": 6.0,
		},
		{
			"id": "A120", "name": "Structural steel erection",
			"work_package": "WP-02", "planned_duration": 25.0,
			"baseline_duration": 20.0, "percent_complete": 0.0,
			"total_float": 2.0,
			"predecessor_ids": []string{"A110"}, "successor_ids": []string{"A130", "A140"},
			"dependency_type": "SS",
			"resource_id":     "CREW-STL", "fte_allocation": 100.0,
			"probability": 0.6, "cost_impact": 120000.0, "delay_impact_days": 10.0,
		},
		{
			"id": "A130", "name": "Mechanical rough-in",
			"work_package": "WP-03", "planned_duration": 20.0,
			"total_float": 8.0,
			"predecessor_ids": []string{"A120"},
			"resource_id":     "CREW-MEP", "fte_allocation": 150.0, "resource_max_fte": 1.0,
			"probability": 0.5, "cost_impact": 45000.0, "delay_impact_days": 3.0,
		},
		{
			"id": "A140", "name": "Electrical rough-in",
			"work_package": "WP-03", "planned_duration": 18.0,
			"total_float": 10.0,
			"predecessor_ids": []string{"A120"},
			"resource_id":     "CREW-ELEC",
			"probability": 0.4, "cost_impact": 30000.0,
		},
		{
			"id": "A150", "name": "Exterior envelope",
			"work_package": "WP-02", "planned_duration": 30.0,
			"baseline_duration": 30.0, "total_float": 5.0,
			"predecessor_ids": []string{"A120"},
			"skill_tags":      []string{"glazing", "waterproofing"},
			"probability": 0.45, "cost_impact": 60000.0, "delay_impact_days": 4.0,
		},
		{
			"id": "A160", "name": "Interior finishes",
			"work_package": "WP-04", "planned_duration": 40.0,
			"total_float": 12.0,
			"predecessor_ids": []string{"A130", "A140"},
			"probability": 0.35, "cost_impact": 20000.0,
		},
		{
			"id": "A170", "name": "Commissioning and handover",
			"work_package": "WP-05", "planned_duration": 12.0,
			"total_float": 0.0, "is_critical_path": true,
			"predecessor_ids": []string{"A150", "A160"},
			"dependency_type": "FF",
			"probability":     0.55, "cost_impact": 95000.0, "delay_impact_days": 7.0,
		},
	}
}
