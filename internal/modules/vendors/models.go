package vendors

// Vendor represents a contractor tracked on the performance dashboard
type Vendor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	// PerformanceScore is the stored composite, kept consistent with the
	// sub-scores by the update endpoint and the nightly recalc job.
	PerformanceScore int        `json:"performance_score"`
	Scores           ScoreInput `json:"detailed_scores"`
	Trend            string     `json:"trend"` // "up", "down", "stable"
}

// ScoreInput holds the four performance sub-scores on a 0-100 scale.
// The scale is advisory: values are not clamped, and out-of-range inputs
// propagate arithmetically into the composite.
type ScoreInput struct {
	OnTime        float64 `json:"on_time"`
	Quality       float64 `json:"quality"`
	Cost          float64 `json:"cost"`
	Communication float64 `json:"communication"`
}

// Alert represents an active or historical vendor alert
type Alert struct {
	ID       int64  `json:"id"`
	VendorID string `json:"vendor_id"`
	Type     string `json:"alert_type"` // "performance", "contract", "delivery", "communication"
	Message  string `json:"message"`
	Severity string `json:"severity"` // "low", "medium", "high"
	IsActive bool   `json:"is_active"`
}

// VendorSummary is the dashboard view of a vendor: composite score, trend,
// active alert messages, and the contributing sub-scores.
type VendorSummary struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Score          int        `json:"score"`
	Trend          string     `json:"trend"`
	Alerts         []string   `json:"alerts"`
	DetailedScores ScoreInput `json:"detailed_scores"`
}
