package risks

// Risk represents an identified project risk attached to a work package.
// Probability and confidence are static demo inputs, not computed values.
type Risk struct {
	ID              string  `json:"id"`
	WorkPackageID   string  `json:"work_package_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	ImpactCost      float64 `json:"impact_cost"` // Cost impact at the baseline delay
	ImpactDays      float64 `json:"impact_days"` // Schedule impact at the baseline delay
	Probability     int     `json:"probability"`
	RiskLevel       string  `json:"risk_level"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
	Reasoning       string  `json:"reasoning,omitempty"`
	ConfidenceLevel int     `json:"confidence_level"`
	WorkPackageName string  `json:"work_package_name,omitempty"` // Joined for dashboard views
}

// Mitigation represents a mitigation option for a risk
type Mitigation struct {
	ID                      int64   `json:"id"`
	RiskID                  string  `json:"risk_id"`
	Title                   string  `json:"title"`
	Description             string  `json:"description,omitempty"`
	Cost                    float64 `json:"cost"`
	TimeToImplement         string  `json:"time_to_implement"`
	RiskReductionPercentage int     `json:"risk_reduction_percentage"`
	Status                  string  `json:"status"` // "proposed", "approved", "rejected", "implemented"
}
