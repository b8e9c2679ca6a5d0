package projects

import "gonum.org/v1/gonum/stat"

// Summarize derives project-level aggregates from work packages.
//
// The headline completion figure is budget-weighted: a 90%-done $1M package
// should not cancel out a 30%-done $18M one. A package is counted as at-risk
// when its status says so or its risk level is HIGH or worse.
func Summarize(packages []WorkPackage) Summary {
	if len(packages) == 0 {
		return Summary{}
	}

	completions := make([]float64, len(packages))
	budgets := make([]float64, len(packages))

	var s Summary
	for i, wp := range packages {
		completions[i] = wp.CompletionPercentage
		budgets[i] = wp.Budget
		s.TotalBudget += wp.Budget

		if atRisk(wp) {
			s.AtRiskBudget += wp.Budget
			s.AtRiskPackages++
		}
	}

	if s.TotalBudget > 0 {
		s.WeightedCompletion = stat.Mean(completions, budgets)
	} else {
		// All budgets zero: fall back to the unweighted mean
		s.WeightedCompletion = stat.Mean(completions, nil)
	}

	return s
}

func atRisk(wp WorkPackage) bool {
	if wp.Status == "at-risk" {
		return true
	}
	return wp.RiskLevel == "HIGH" || wp.RiskLevel == "CRITICAL"
}
