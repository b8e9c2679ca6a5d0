package risks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/modules/scenario"
)

// ErrRiskNotFound is returned when a risk ID does not exist
var ErrRiskNotFound = errors.New("risk not found")

// Repository handles risk and mitigation storage operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger

	// baselineWeeks is the reference delay stored impacts are quoted
	// against, injected from configuration.
	baselineWeeks float64
}

// NewRepository creates a new risk repository
func NewRepository(db *sql.DB, baselineWeeks float64, log zerolog.Logger) *Repository {
	return &Repository{
		db:            db,
		log:           log.With().Str("repo", "risks").Logger(),
		baselineWeeks: baselineWeeks,
	}
}

const riskColumns = `id, work_package_id, title, description, impact_cost,
	impact_days, probability, risk_level, reasoning, confidence_level`

func scanRisk(row interface{ Scan(...interface{}) error }) (*Risk, error) {
	var risk Risk
	var description, reasoning sql.NullString
	if err := row.Scan(
		&risk.ID, &risk.WorkPackageID, &risk.Title, &description,
		&risk.ImpactCost, &risk.ImpactDays, &risk.Probability,
		&risk.RiskLevel, &reasoning, &risk.ConfidenceLevel,
	); err != nil {
		return nil, err
	}
	risk.Description = description.String
	risk.Reasoning = reasoning.String
	return &risk, nil
}

// Get returns a single risk by ID
func (r *Repository) Get(id string) (*Risk, error) {
	row := r.db.QueryRow("SELECT "+riskColumns+" FROM risks WHERE id = ?", id)

	risk, err := scanRisk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRiskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get risk: %w", err)
	}

	return risk, nil
}

// GetByWorkPackageID returns the first risk recorded against a work package
func (r *Repository) GetByWorkPackageID(workPackageID string) (*Risk, error) {
	row := r.db.QueryRow(
		"SELECT "+riskColumns+" FROM risks WHERE work_package_id = ? ORDER BY created_at LIMIT 1",
		workPackageID,
	)

	risk, err := scanRisk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRiskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get risk for work package: %w", err)
	}

	return risk, nil
}

// BaselineForWorkPackage implements scenario.BaselineSource: it converts the
// stored risk record for a work package into a scenario baseline.
func (r *Repository) BaselineForWorkPackage(workPackageID string) (*scenario.RiskBaseline, error) {
	risk, err := r.GetByWorkPackageID(workPackageID)
	if errors.Is(err, ErrRiskNotFound) {
		return nil, scenario.ErrBaselineNotFound
	}
	if err != nil {
		return nil, err
	}

	return &scenario.RiskBaseline{
		WorkPackageID: risk.WorkPackageID,
		ImpactCost:    risk.ImpactCost,
		ImpactDays:    risk.ImpactDays,
		BaselineWeeks: r.baselineWeeks,
	}, nil
}

// TopByCostImpact returns the highest cost-impact risks with their work
// package names, for the dashboard briefing.
func (r *Repository) TopByCostImpact(limit int) ([]Risk, error) {
	rows, err := r.db.Query(`
		SELECT r.id, r.work_package_id, r.title, r.description, r.impact_cost,
			r.impact_days, r.probability, r.risk_level, r.reasoning,
			r.confidence_level, wp.name
		FROM risks r
		JOIN work_packages wp ON wp.id = r.work_package_id
		ORDER BY r.impact_cost DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top risks: %w", err)
	}
	defer rows.Close()

	var result []Risk
	for rows.Next() {
		var risk Risk
		var description, reasoning sql.NullString
		if err := rows.Scan(
			&risk.ID, &risk.WorkPackageID, &risk.Title, &description,
			&risk.ImpactCost, &risk.ImpactDays, &risk.Probability,
			&risk.RiskLevel, &reasoning, &risk.ConfidenceLevel,
			&risk.WorkPackageName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan risk: %w", err)
		}
		risk.Description = description.String
		risk.Reasoning = reasoning.String
		result = append(result, risk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risks: %w", err)
	}

	return result, nil
}

// Create inserts a new risk
func (r *Repository) Create(risk *Risk) error {
	now := time.Now().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO risks (id, work_package_id, title, description, impact_cost,
			impact_days, probability, risk_level, reasoning, confidence_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		risk.ID, risk.WorkPackageID, risk.Title, risk.Description, risk.ImpactCost,
		risk.ImpactDays, risk.Probability, risk.RiskLevel, risk.Reasoning,
		risk.ConfidenceLevel, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create risk: %w", err)
	}

	return nil
}

// MitigationsForRisk returns all mitigation options for a risk
func (r *Repository) MitigationsForRisk(riskID string) ([]Mitigation, error) {
	rows, err := r.db.Query(`
		SELECT id, risk_id, title, description, cost, time_to_implement,
			risk_reduction_percentage, status
		FROM mitigations
		WHERE risk_id = ?
		ORDER BY risk_reduction_percentage DESC`, riskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mitigations: %w", err)
	}
	defer rows.Close()

	var mitigations []Mitigation
	for rows.Next() {
		var m Mitigation
		var description, timeToImplement sql.NullString
		if err := rows.Scan(
			&m.ID, &m.RiskID, &m.Title, &description, &m.Cost,
			&timeToImplement, &m.RiskReductionPercentage, &m.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mitigation: %w", err)
		}
		m.Description = description.String
		m.TimeToImplement = timeToImplement.String
		mitigations = append(mitigations, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mitigations: %w", err)
	}

	return mitigations, nil
}

// CreateMitigation inserts a new mitigation option
func (r *Repository) CreateMitigation(m *Mitigation) error {
	now := time.Now().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO mitigations (risk_id, title, description, cost,
			time_to_implement, risk_reduction_percentage, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RiskID, m.Title, m.Description, m.Cost,
		m.TimeToImplement, m.RiskReductionPercentage, m.Status, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create mitigation: %w", err)
	}

	return nil
}
