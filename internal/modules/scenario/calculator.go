// Package scenario implements what-if delay analysis for work package risks.
//
// The calculator scales a stored baseline risk (cost and schedule impact,
// quoted against a reference delay) linearly by the requested delay, projects
// a new completion date, and classifies the requested delay into a risk tier.
// It is pure: no I/O, no shared state, safe for concurrent use.
package scenario

import (
	"errors"
	"time"
)

// RiskLevel classifies the severity of a delay scenario
type RiskLevel string

const (
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// DefaultBaselineWeeks is the reference delay every stored risk impact is
// quoted against. A stored impact of $2.3M / 18 days means "2.3M and 18 days
// if the package slips by this many weeks".
const DefaultBaselineWeeks = 2.0

// CompletionDateFormat is the calendar format returned to API clients,
// e.g. "Mar 15, 2025".
const CompletionDateFormat = "Jan 02, 2006"

var (
	// ErrInvalidDelay indicates a non-positive requested delay. Callers
	// should surface this as a client-input error, not retry.
	ErrInvalidDelay = errors.New("delay weeks must be positive")

	// ErrInvalidBaseline indicates a baseline with a non-positive reference
	// delay, which would make the scaling multiplier undefined.
	ErrInvalidBaseline = errors.New("baseline delay weeks must be positive")
)

// RiskBaseline is the stored risk record a scenario is scaled from
type RiskBaseline struct {
	WorkPackageID string  `json:"work_package_id"`
	ImpactCost    float64 `json:"impact_cost"` // Currency amount at the baseline delay
	ImpactDays    float64 `json:"impact_days"` // Schedule slip in days at the baseline delay
	BaselineWeeks float64 `json:"baseline_weeks"`
}

// ScenarioRequest is a what-if question: what if this work package slips by
// the given number of weeks? Fractional weeks are accepted.
type ScenarioRequest struct {
	WorkPackageID string  `json:"work_package_id"`
	DelayWeeks    float64 `json:"delay_weeks"`
}

// ScenarioResult holds the scaled impact of a delay scenario
type ScenarioResult struct {
	BudgetImpact   float64   `json:"budget_impact"`
	ScheduleImpact int       `json:"schedule_impact"` // Whole days, fractional days truncated
	CompletionDate string    `json:"completion_date"`
	RiskLevel      RiskLevel `json:"risk_level"`
}

// Classify maps a requested delay to a risk tier. The classification is a
// function of the requested delay itself, not of the scaled outputs.
// Exactly 3 weeks is HIGH, not CRITICAL.
func Classify(delayWeeks float64) RiskLevel {
	switch {
	case delayWeeks > 3:
		return RiskCritical
	case delayWeeks > 2:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// Compute scales the baseline risk by the requested delay and projects the
// resulting completion date. remainingDays is the number of days from today
// to contractual completion absent any delay; it comes from configuration,
// not from this package.
//
// Schedule impact is truncated to whole days, not rounded. Downstream
// consumers compare these values, so the truncation must not change.
func Compute(baseline RiskBaseline, req ScenarioRequest, remainingDays int, today time.Time) (ScenarioResult, error) {
	if req.DelayWeeks <= 0 {
		return ScenarioResult{}, ErrInvalidDelay
	}
	if baseline.BaselineWeeks <= 0 {
		return ScenarioResult{}, ErrInvalidBaseline
	}

	multiplier := req.DelayWeeks / baseline.BaselineWeeks

	budgetImpact := baseline.ImpactCost * multiplier
	scheduleImpact := int(baseline.ImpactDays * multiplier)

	completion := today.AddDate(0, 0, remainingDays+scheduleImpact)

	return ScenarioResult{
		BudgetImpact:   budgetImpact,
		ScheduleImpact: scheduleImpact,
		CompletionDate: completion.Format(CompletionDateFormat),
		RiskLevel:      Classify(req.DelayWeeks),
	}, nil
}
