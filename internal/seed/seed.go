// Package seed populates the database with the demo dataset: the Port
// Expansion Project, its vendors, work packages, the critical electrical
// risk, mitigation options, and vendor alerts.
package seed

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"
)

// ErrAlreadySeeded is returned when demo data already exists and force is false
var ErrAlreadySeeded = errors.New("database already contains a project")

// Seeder writes the demo dataset through the module repositories
type Seeder struct {
	projectRepo *projects.Repository
	vendorRepo  *vendors.Repository
	riskRepo    *risks.Repository
	log         zerolog.Logger
}

// New creates a new seeder
func New(
	projectRepo *projects.Repository,
	vendorRepo *vendors.Repository,
	riskRepo *risks.Repository,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{
		projectRepo: projectRepo,
		vendorRepo:  vendorRepo,
		riskRepo:    riskRepo,
		log:         log.With().Str("component", "seed").Logger(),
	}
}

// Run seeds the demo dataset and returns the created project ID.
// It refuses to run against a non-empty database unless force is set.
func (s *Seeder) Run(force bool) (string, error) {
	count, err := s.projectRepo.Count()
	if err != nil {
		return "", err
	}
	if count > 0 && !force {
		return "", ErrAlreadySeeded
	}

	projectID := uuid.New().String()
	project := &projects.Project{
		ID:          projectID,
		Name:        "Port Expansion Project - Phase 2",
		Description: "Major port infrastructure expansion including electrical, HVAC, and structural work",
		Budget:      75000000,
		StartDate:   "2024-08-01",
		EndDate:     "2025-03-31",
		Status:      "active",
	}
	if err := s.projectRepo.Create(project); err != nil {
		return "", err
	}
	s.log.Info().Str("project_id", projectID).Msg("Created project")

	vendorRows := []vendors.Vendor{
		{
			Name:         "ABC Electrical",
			ContactEmail: "pm@abcelectrical.com",
			Scores:       vendors.ScoreInput{OnTime: 60, Quality: 80, Cost: 65, Communication: 70},
			Trend:        "down",
		},
		{
			Name:         "Steelworks Pro",
			ContactEmail: "contact@steelworkspro.com",
			Scores:       vendors.ScoreInput{OnTime: 95, Quality: 88, Cost: 85, Communication: 90},
			Trend:        "up",
		},
		{
			Name:         "HVAC Solutions",
			ContactEmail: "pm@hvacsolutions.com",
			Scores:       vendors.ScoreInput{OnTime: 70, Quality: 75, Cost: 70, Communication: 75},
			Trend:        "stable",
		},
		{
			Name:         "SafeGuard Fire",
			ContactEmail: "projects@safeguardfire.com",
			Scores:       vendors.ScoreInput{OnTime: 98, Quality: 95, Cost: 90, Communication: 95},
			Trend:        "up",
		},
		{
			Name:         "TechNet Systems",
			ContactEmail: "delivery@technetsystems.com",
			Scores:       vendors.ScoreInput{OnTime: 65, Quality: 70, Cost: 68, Communication: 70},
			Trend:        "down",
		},
	}

	vendorIDs := make([]string, len(vendorRows))
	for i := range vendorRows {
		vendorRows[i].ID = uuid.New().String()
		vendorRows[i].PerformanceScore = vendors.CompositeScore(vendorRows[i].Scores)
		vendorIDs[i] = vendorRows[i].ID

		if err := s.vendorRepo.Create(&vendorRows[i]); err != nil {
			return "", err
		}
	}
	s.log.Info().Int("count", len(vendorRows)).Msg("Created vendors")

	packages := []projects.WorkPackage{
		{Name: "Foundation & Structural", Budget: 12000000, CompletionPercentage: 78, Status: "in-progress", RiskLevel: "LOW", VendorID: vendorIDs[1]},
		{Name: "Electrical Systems", Budget: 18000000, CompletionPercentage: 45, Status: "at-risk", RiskLevel: "HIGH", VendorID: vendorIDs[0]},
		{Name: "HVAC Installation", Budget: 15000000, CompletionPercentage: 52, Status: "at-risk", RiskLevel: "MEDIUM", VendorID: vendorIDs[2]},
		{Name: "Fire Safety Systems", Budget: 8000000, CompletionPercentage: 89, Status: "in-progress", RiskLevel: "LOW", VendorID: vendorIDs[3]},
		{Name: "IT Infrastructure", Budget: 12000000, CompletionPercentage: 34, Status: "at-risk", RiskLevel: "MEDIUM", VendorID: vendorIDs[4]},
		{Name: "Exterior Cladding", Budget: 10000000, CompletionPercentage: 67, Status: "in-progress", RiskLevel: "LOW", VendorID: vendorIDs[1]},
	}

	packageIDs := make([]string, len(packages))
	for i := range packages {
		packages[i].ID = uuid.New().String()
		packages[i].ProjectID = projectID
		packageIDs[i] = packages[i].ID

		if err := s.projectRepo.CreateWorkPackage(&packages[i]); err != nil {
			return "", err
		}
	}
	s.log.Info().Int("count", len(packages)).Msg("Created work packages")

	riskID := uuid.New().String()
	electricalRisk := &risks.Risk{
		ID:              riskID,
		WorkPackageID:   packageIDs[1], // Electrical Systems
		Title:           "Electrical Package - Vendor Performance Decline",
		Description:     "ABC Electrical showing declining performance across multiple metrics",
		ImpactCost:      2300000,
		ImpactDays:      18,
		Probability:     85,
		RiskLevel:       "HIGH",
		Reasoning:       "ABC Electrical missed 3/5 recent milestones. Historical pattern shows 85% probability of 2-week delay. Contract compliance at 67% and declining.",
		ConfidenceLevel: 85,
	}
	if err := s.riskRepo.Create(electricalRisk); err != nil {
		return "", err
	}
	s.log.Info().Str("risk_id", riskID).Msg("Created critical electrical risk")

	mitigations := []risks.Mitigation{
		{
			RiskID:                  riskID,
			Title:                   "Dual-source switchgear procurement",
			Description:             "Secure secondary supplier for critical electrical components",
			Cost:                    180000,
			TimeToImplement:         "5 days",
			RiskReductionPercentage: 45,
			Status:                  "proposed",
		},
		{
			RiskID:                  riskID,
			Title:                   "Accelerate contractor penalties",
			Description:             "Trigger contractual penalty clauses immediately",
			Cost:                    0,
			TimeToImplement:         "2 days",
			RiskReductionPercentage: 25,
			Status:                  "proposed",
		},
		{
			RiskID:                  riskID,
			Title:                   "Bring backup vendor online",
			Description:             "Activate pre-qualified backup electrical contractor",
			Cost:                    340000,
			TimeToImplement:         "14 days",
			RiskReductionPercentage: 70,
			Status:                  "proposed",
		},
	}
	for i := range mitigations {
		if err := s.riskRepo.CreateMitigation(&mitigations[i]); err != nil {
			return "", err
		}
	}
	s.log.Info().Int("count", len(mitigations)).Msg("Created mitigation options")

	alerts := []vendors.Alert{
		{VendorID: vendorIDs[0], Type: "performance", Message: "3 consecutive missed milestones", Severity: "high", IsActive: true},
		{VendorID: vendorIDs[0], Type: "contract", Message: "Penalty clause triggers in 14 days", Severity: "high", IsActive: true},
		{VendorID: vendorIDs[2], Type: "delivery", Message: "Material delivery 3 days late", Severity: "medium", IsActive: true},
		{VendorID: vendorIDs[4], Type: "communication", Message: "RFI response time exceeded", Severity: "medium", IsActive: true},
	}
	for i := range alerts {
		if err := s.vendorRepo.CreateAlert(&alerts[i]); err != nil {
			return "", err
		}
	}
	s.log.Info().Int("count", len(alerts)).Msg("Created vendor alerts")

	return projectID, nil
}
