package projects

import (
	"math"
	"testing"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalBudget != 0 || s.WeightedCompletion != 0 || s.AtRiskPackages != 0 {
		t.Errorf("empty input should produce zero summary, got %+v", s)
	}
}

func TestSummarize_WeightedCompletion(t *testing.T) {
	packages := []WorkPackage{
		{Name: "Small", Budget: 1000000, CompletionPercentage: 90, Status: "in-progress", RiskLevel: "LOW"},
		{Name: "Large", Budget: 9000000, CompletionPercentage: 30, Status: "in-progress", RiskLevel: "LOW"},
	}

	s := Summarize(packages)

	// (90*1 + 30*9) / 10 = 36, far from the unweighted mean of 60
	if math.Abs(s.WeightedCompletion-36) > 1e-9 {
		t.Errorf("WeightedCompletion = %v, want 36", s.WeightedCompletion)
	}
	if s.TotalBudget != 10000000 {
		t.Errorf("TotalBudget = %v, want 10000000", s.TotalBudget)
	}
}

func TestSummarize_AtRisk(t *testing.T) {
	packages := []WorkPackage{
		{Budget: 12000000, CompletionPercentage: 78, Status: "in-progress", RiskLevel: "LOW"},
		{Budget: 18000000, CompletionPercentage: 45, Status: "at-risk", RiskLevel: "HIGH"},
		{Budget: 15000000, CompletionPercentage: 52, Status: "at-risk", RiskLevel: "MEDIUM"},
		{Budget: 8000000, CompletionPercentage: 89, Status: "in-progress", RiskLevel: "LOW"},
	}

	s := Summarize(packages)

	if s.AtRiskPackages != 2 {
		t.Errorf("AtRiskPackages = %v, want 2", s.AtRiskPackages)
	}
	if s.AtRiskBudget != 33000000 {
		t.Errorf("AtRiskBudget = %v, want 33000000", s.AtRiskBudget)
	}
}

func TestSummarize_ZeroBudgets(t *testing.T) {
	packages := []WorkPackage{
		{CompletionPercentage: 40},
		{CompletionPercentage: 60},
	}

	s := Summarize(packages)

	if math.Abs(s.WeightedCompletion-50) > 1e-9 {
		t.Errorf("WeightedCompletion = %v, want unweighted mean 50", s.WeightedCompletion)
	}
}
