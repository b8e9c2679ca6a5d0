package scenario

import (
	"errors"
	"math"
	"testing"
	"time"
)

func baseline() RiskBaseline {
	return RiskBaseline{
		WorkPackageID: "wp-electrical",
		ImpactCost:    2300000,
		ImpactDays:    18,
		BaselineWeeks: DefaultBaselineWeeks,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		delayWeeks float64
		want       RiskLevel
	}{
		{"baseline delay is medium", 2, RiskMedium},
		{"below baseline is medium", 0.5, RiskMedium},
		{"just above two weeks is high", 2.5, RiskHigh},
		{"exactly three weeks is high, boundary is exclusive", 3, RiskHigh},
		{"above three weeks is critical", 3.5, RiskCritical},
		{"four weeks is critical", 4, RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.delayWeeks); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.delayWeeks, got, tt.want)
			}
		})
	}
}

func TestCompute_BaselineDelayReproducesBaseline(t *testing.T) {
	today := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	result, err := Compute(baseline(), ScenarioRequest{WorkPackageID: "wp-electrical", DelayWeeks: 2}, 127, today)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if result.BudgetImpact != 2300000 {
		t.Errorf("BudgetImpact = %v, want baseline cost 2300000", result.BudgetImpact)
	}
	if result.ScheduleImpact != 18 {
		t.Errorf("ScheduleImpact = %v, want baseline days 18", result.ScheduleImpact)
	}
	if result.RiskLevel != RiskMedium {
		t.Errorf("RiskLevel = %v, want MEDIUM", result.RiskLevel)
	}
}

func TestCompute_FourWeekScenario(t *testing.T) {
	// Doubling the baseline delay doubles both impacts.
	today := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	result, err := Compute(baseline(), ScenarioRequest{WorkPackageID: "wp-electrical", DelayWeeks: 4}, 127, today)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if result.BudgetImpact != 4600000 {
		t.Errorf("BudgetImpact = %v, want 4600000", result.BudgetImpact)
	}
	if result.ScheduleImpact != 36 {
		t.Errorf("ScheduleImpact = %v, want 36", result.ScheduleImpact)
	}
	if result.RiskLevel != RiskCritical {
		t.Errorf("RiskLevel = %v, want CRITICAL", result.RiskLevel)
	}

	// today + 127 remaining + 36 slip days
	want := today.AddDate(0, 0, 163).Format(CompletionDateFormat)
	if result.CompletionDate != want {
		t.Errorf("CompletionDate = %v, want %v", result.CompletionDate, want)
	}
}

func TestCompute_LinearInDelayWeeks(t *testing.T) {
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	b := baseline()

	for _, weeks := range []float64{0.5, 1, 1.5, 2, 3, 5, 8} {
		single, err := Compute(b, ScenarioRequest{DelayWeeks: weeks}, 127, today)
		if err != nil {
			t.Fatalf("Compute(%v weeks) returned error: %v", weeks, err)
		}
		double, err := Compute(b, ScenarioRequest{DelayWeeks: weeks * 2}, 127, today)
		if err != nil {
			t.Fatalf("Compute(%v weeks) returned error: %v", weeks*2, err)
		}

		if math.Abs(double.BudgetImpact-2*single.BudgetImpact) > 1e-9 {
			t.Errorf("doubling %v weeks: budget %v, want %v", weeks, double.BudgetImpact, 2*single.BudgetImpact)
		}
	}
}

func TestCompute_TruncatesFractionalDays(t *testing.T) {
	// 18 days * (1.99/2) = 17.91 raw, which must come out as 17, not 18.
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := Compute(baseline(), ScenarioRequest{DelayWeeks: 1.99}, 127, today)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if result.ScheduleImpact != 17 {
		t.Errorf("ScheduleImpact = %v, want 17 (truncated, not rounded)", result.ScheduleImpact)
	}
}

func TestCompute_InvalidDelay(t *testing.T) {
	today := time.Now()

	for _, weeks := range []float64{0, -1, -2.5} {
		_, err := Compute(baseline(), ScenarioRequest{DelayWeeks: weeks}, 127, today)
		if !errors.Is(err, ErrInvalidDelay) {
			t.Errorf("Compute(%v weeks) error = %v, want ErrInvalidDelay", weeks, err)
		}
	}
}

func TestCompute_InvalidBaseline(t *testing.T) {
	b := baseline()
	b.BaselineWeeks = 0

	_, err := Compute(b, ScenarioRequest{DelayWeeks: 2}, 127, time.Now())
	if !errors.Is(err, ErrInvalidBaseline) {
		t.Errorf("error = %v, want ErrInvalidBaseline", err)
	}
}

func TestCompute_ZeroImpactBaseline(t *testing.T) {
	b := RiskBaseline{WorkPackageID: "wp-x", ImpactCost: 0, ImpactDays: 0, BaselineWeeks: 2}
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := Compute(b, ScenarioRequest{DelayWeeks: 4}, 10, today)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if result.BudgetImpact != 0 || result.ScheduleImpact != 0 {
		t.Errorf("zero baseline should scale to zero, got %+v", result)
	}

	want := today.AddDate(0, 0, 10).Format(CompletionDateFormat)
	if result.CompletionDate != want {
		t.Errorf("CompletionDate = %v, want %v", result.CompletionDate, want)
	}
}
