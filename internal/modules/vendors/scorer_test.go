package vendors

import (
	"math"
	"testing"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightOnTime + WeightQuality + WeightCost + WeightCommunication
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("weights sum = %v, want 1.0", sum)
	}
}

func TestCompositeScore(t *testing.T) {
	tests := []struct {
		name   string
		scores ScoreInput
		want   int
	}{
		{
			name:   "all perfect",
			scores: ScoreInput{OnTime: 100, Quality: 100, Cost: 100, Communication: 100},
			want:   100,
		},
		{
			name:   "all zero",
			scores: ScoreInput{},
			want:   0,
		},
		{
			name:   "only communication counts for its weight",
			scores: ScoreInput{Communication: 100},
			want:   15,
		},
		{
			name:   "only on-time counts for its weight",
			scores: ScoreInput{OnTime: 100},
			want:   35,
		},
		{
			name:   "mixed scores",
			scores: ScoreInput{OnTime: 90, Quality: 80, Cost: 70, Communication: 60},
			want:   78, // 31.5 + 20 + 17.5 + 9
		},
		{
			name:   "fractional composite truncates, not rounds",
			scores: ScoreInput{OnTime: 60, Quality: 80, Cost: 65, Communication: 70},
			want:   67, // 21 + 20 + 16.25 + 10.5 = 67.75
		},
		{
			name:   "out of range inputs propagate without clamping",
			scores: ScoreInput{OnTime: 200, Quality: 100, Cost: 100, Communication: 100},
			want:   135,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompositeScore(tt.scores); got != tt.want {
				t.Errorf("CompositeScore(%+v) = %v, want %v", tt.scores, got, tt.want)
			}
		})
	}
}
