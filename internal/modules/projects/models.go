package projects

import "github.com/latsoguy/latso-mvp-demo/internal/modules/risks"

// Project represents a tracked construction project
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Budget      float64 `json:"budget"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"` // "active", "on-hold", "completed"
}

// WorkPackage represents a scoped unit of project work assigned to a vendor
type WorkPackage struct {
	ID                   string  `json:"id"`
	ProjectID            string  `json:"project_id"`
	Name                 string  `json:"name"`
	Budget               float64 `json:"budget"`
	CompletionPercentage float64 `json:"completion_percentage"`
	Status               string  `json:"status"`     // "in-progress", "at-risk", "complete"
	RiskLevel            string  `json:"risk_level"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
	VendorID             string  `json:"vendor_id"`
	VendorName           string  `json:"vendor_name,omitempty"`
}

// CriticalItem is a high-severity risk surfaced in the morning briefing
type CriticalItem struct {
	Title     string `json:"title"`
	Impact    string `json:"impact"`
	Reasoning string `json:"reasoning"`
}

// Summary holds project-level aggregates derived from work packages
type Summary struct {
	WeightedCompletion float64 `json:"weighted_completion"` // Budget-weighted completion percentage
	TotalBudget        float64 `json:"total_budget"`
	AtRiskBudget       float64 `json:"at_risk_budget"`
	AtRiskPackages     int     `json:"at_risk_packages"`
}

// DashboardResponse is the payload for the project dashboard view
type DashboardResponse struct {
	Project        *Project       `json:"project"`
	WorkPackages   []WorkPackage  `json:"work_packages"`
	CriticalItems  []CriticalItem `json:"critical_items"`
	Summary        Summary        `json:"summary"`
	TopRisks       []risks.Risk   `json:"top_risks"`
	TimeSavedToday string         `json:"time_saved_today"`
}
