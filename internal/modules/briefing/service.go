package briefing

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/events"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
)

// Service composes executive briefs from stored project data. There is no AI
// generation here: numbers come from the database, narrative framing is
// canned demo text.
type Service struct {
	projectRepo   *projects.Repository
	riskRepo      *risks.Repository
	briefRepo     *Repository
	bus           *events.Bus
	remainingDays int
	log           zerolog.Logger
	now           func() time.Time
}

// NewService creates a new briefing service
func NewService(
	projectRepo *projects.Repository,
	riskRepo *risks.Repository,
	briefRepo *Repository,
	bus *events.Bus,
	remainingDays int,
	log zerolog.Logger,
) *Service {
	return &Service{
		projectRepo:   projectRepo,
		riskRepo:      riskRepo,
		briefRepo:     briefRepo,
		bus:           bus,
		remainingDays: remainingDays,
		log:           log.With().Str("service", "briefing").Logger(),
		now:           time.Now,
	}
}

// Generate builds a brief for a project, persists it, and returns it
func (s *Service) Generate(projectID string) (*Brief, error) {
	project, err := s.projectRepo.Get(projectID)
	if err != nil {
		return nil, err
	}

	packages, err := s.projectRepo.WorkPackagesForProject(projectID)
	if err != nil {
		return nil, err
	}

	topRisks, err := s.riskRepo.TopByCostImpact(3)
	if err != nil {
		return nil, err
	}

	summary := projects.Summarize(packages)

	// Spend is approximated as budget earned to date; the demo dataset has
	// no actuals to draw on.
	var earned float64
	for _, wp := range packages {
		earned += wp.Budget * wp.CompletionPercentage / 100
	}

	var atRiskCost float64
	var atRiskDays float64
	riskLines := make([]string, 0, len(topRisks))
	recommendations := make([]string, 0)
	for _, risk := range topRisks {
		atRiskCost += risk.ImpactCost
		atRiskDays += risk.ImpactDays
		riskLines = append(riskLines, fmt.Sprintf("%s: %s", risk.WorkPackageName, risk.Title))

		mitigations, err := s.riskRepo.MitigationsForRisk(risk.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range mitigations {
			if m.Status != "proposed" {
				continue
			}
			if m.Cost > 0 {
				recommendations = append(recommendations,
					fmt.Sprintf("%s (+$%.0fK)", m.Title, m.Cost/1000))
			} else {
				recommendations = append(recommendations, m.Title)
			}
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "No open mitigation proposals - review risk register")
	}

	brief := &Brief{
		ProjectID:       projectID,
		GeneratedAt:     s.now().UTC(),
		GenerationTime:  "10 seconds",
		TimeSaved:       "3 hours",
		ProjectHealth:   health(summary),
		TopRisks:        riskLines,
		Recommendations: recommendations,
		BudgetStatus: BudgetStatus{
			Remaining: project.Budget - earned,
			AtRisk:    atRiskCost,
		},
		ScheduleStatus: ScheduleStatus{
			DaysRemaining: s.remainingDays,
			AtRiskDays:    int(atRiskDays),
		},
	}

	if err := s.briefRepo.Save(brief); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(&events.BriefGeneratedData{
			ProjectID:     projectID,
			ProjectHealth: brief.ProjectHealth,
		})
	}

	s.log.Info().
		Str("project_id", projectID).
		Str("health", brief.ProjectHealth).
		Msg("Executive brief generated")

	return brief, nil
}

// Latest returns the most recent brief for a project
func (s *Service) Latest(projectID string) (*Brief, error) {
	return s.briefRepo.Latest(projectID)
}

func health(s projects.Summary) string {
	switch {
	case s.AtRiskPackages >= 2:
		return "At Risk"
	case s.AtRiskPackages == 1:
		return "Needs Attention"
	default:
		return "On Track"
	}
}
