package vendors

// Composite score weights. On-time delivery dominates because late vendor
// deliveries are the primary schedule risk on the tracked projects.
// The four weights sum to 1.0.
const (
	WeightOnTime        = 0.35
	WeightQuality       = 0.25
	WeightCost          = 0.25
	WeightCommunication = 0.15
)

// CompositeScore computes the weighted composite performance score from the
// four sub-scores. The weighted sum is truncated toward zero, not rounded;
// downstream consumers compare stored composites, so the truncation must not
// change. Pure and safe for concurrent use.
func CompositeScore(s ScoreInput) int {
	composite := s.OnTime*WeightOnTime +
		s.Quality*WeightQuality +
		s.Cost*WeightCost +
		s.Communication*WeightCommunication

	return int(composite)
}
