// Package jobs contains scheduled background jobs for the vendors module.
package jobs

import (
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"
)

// ScoreRecalcJob recomputes every vendor's stored composite score from its
// stored sub-scores. Seed scripts and manual edits write composites directly;
// this keeps them consistent with the scoring formula.
type ScoreRecalcJob struct {
	repo *vendors.Repository
	log  zerolog.Logger
}

// NewScoreRecalcJob creates a new score recalculation job
func NewScoreRecalcJob(repo *vendors.Repository, log zerolog.Logger) *ScoreRecalcJob {
	return &ScoreRecalcJob{
		repo: repo,
		log:  log.With().Str("job", "vendor_score_recalc").Logger(),
	}
}

// Name returns the job name
func (j *ScoreRecalcJob) Name() string {
	return "vendor_score_recalc"
}

// Run recalculates all composite scores
func (j *ScoreRecalcJob) Run() error {
	changed, err := j.repo.RecalculateComposites()
	if err != nil {
		return err
	}

	if changed > 0 {
		j.log.Info().Int("changed", changed).Msg("Vendor composite scores corrected")
	}

	return nil
}
