package briefing

import "time"

// Brief is an executive brief snapshot. Narrative fields are canned demo
// text; numeric fields are derived from stored project data where possible.
type Brief struct {
	ProjectID       string         `json:"project_id" msgpack:"project_id"`
	GeneratedAt     time.Time      `json:"generated_at" msgpack:"generated_at"`
	GenerationTime  string         `json:"generation_time" msgpack:"generation_time"`
	TimeSaved       string         `json:"time_saved" msgpack:"time_saved"`
	ProjectHealth   string         `json:"project_health" msgpack:"project_health"`
	TopRisks        []string       `json:"top_risks" msgpack:"top_risks"`
	Recommendations []string       `json:"recommendations" msgpack:"recommendations"`
	BudgetStatus    BudgetStatus   `json:"budget_status" msgpack:"budget_status"`
	ScheduleStatus  ScheduleStatus `json:"schedule_status" msgpack:"schedule_status"`
}

// BudgetStatus summarizes remaining and at-risk budget
type BudgetStatus struct {
	Remaining float64 `json:"remaining" msgpack:"remaining"`
	AtRisk    float64 `json:"at_risk" msgpack:"at_risk"`
}

// ScheduleStatus summarizes remaining and at-risk schedule days
type ScheduleStatus struct {
	DaysRemaining int `json:"days_remaining" msgpack:"days_remaining"`
	AtRiskDays    int `json:"at_risk_days" msgpack:"at_risk_days"`
}
