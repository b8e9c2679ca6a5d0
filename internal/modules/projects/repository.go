package projects

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrProjectNotFound is returned when a project ID does not exist
var ErrProjectNotFound = errors.New("project not found")

// Repository handles project and work package storage operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new project repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "projects").Logger(),
	}
}

// Get returns a single project by ID
func (r *Repository) Get(id string) (*Project, error) {
	var p Project
	var description, startDate, endDate sql.NullString

	err := r.db.QueryRow(`
		SELECT id, name, description, budget, start_date, end_date, status
		FROM projects WHERE id = ?`, id).Scan(
		&p.ID, &p.Name, &description, &p.Budget, &startDate, &endDate, &p.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	p.Description = description.String
	p.StartDate = startDate.String
	p.EndDate = endDate.String
	return &p, nil
}

// Create inserts a new project
func (r *Repository) Create(p *Project) error {
	now := time.Now().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO projects (id, name, description, budget, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Budget, p.StartDate, p.EndDate, p.Status, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Count returns the number of stored projects
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// WorkPackagesForProject returns all work packages for a project with their
// vendor names joined in.
func (r *Repository) WorkPackagesForProject(projectID string) ([]WorkPackage, error) {
	rows, err := r.db.Query(`
		SELECT wp.id, wp.project_id, wp.name, wp.budget, wp.completion_percentage,
			wp.status, wp.risk_level, wp.vendor_id, v.name
		FROM work_packages wp
		LEFT JOIN vendors v ON v.id = wp.vendor_id
		WHERE wp.project_id = ?
		ORDER BY wp.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work packages: %w", err)
	}
	defer rows.Close()

	var packages []WorkPackage
	for rows.Next() {
		var wp WorkPackage
		var vendorID, vendorName sql.NullString
		if err := rows.Scan(
			&wp.ID, &wp.ProjectID, &wp.Name, &wp.Budget, &wp.CompletionPercentage,
			&wp.Status, &wp.RiskLevel, &vendorID, &vendorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work package: %w", err)
		}
		wp.VendorID = vendorID.String
		wp.VendorName = vendorName.String
		packages = append(packages, wp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work packages: %w", err)
	}

	return packages, nil
}

// CreateWorkPackage inserts a new work package
func (r *Repository) CreateWorkPackage(wp *WorkPackage) error {
	now := time.Now().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO work_packages (id, project_id, name, budget, completion_percentage,
			status, risk_level, vendor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wp.ID, wp.ProjectID, wp.Name, wp.Budget, wp.CompletionPercentage,
		wp.Status, wp.RiskLevel, wp.VendorID, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create work package: %w", err)
	}

	return nil
}
