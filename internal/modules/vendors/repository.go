package vendors

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrVendorNotFound is returned when a vendor ID does not exist
var ErrVendorNotFound = errors.New("vendor not found")

// Repository handles vendor storage operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new vendor repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "vendors").Logger(),
	}
}

const vendorColumns = `id, name, contact_email, performance_score,
	on_time_delivery, quality_score, cost_performance, communication_score, trend`

func scanVendor(row interface{ Scan(...interface{}) error }) (*Vendor, error) {
	var v Vendor
	var email sql.NullString
	if err := row.Scan(
		&v.ID, &v.Name, &email, &v.PerformanceScore,
		&v.Scores.OnTime, &v.Scores.Quality, &v.Scores.Cost, &v.Scores.Communication,
		&v.Trend,
	); err != nil {
		return nil, err
	}
	v.ContactEmail = email.String
	return &v, nil
}

// List returns all vendors ordered by name
func (r *Repository) List() ([]Vendor, error) {
	rows, err := r.db.Query("SELECT " + vendorColumns + " FROM vendors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendors: %w", err)
	}

	return vendors, nil
}

// Get returns a single vendor by ID
func (r *Repository) Get(id string) (*Vendor, error) {
	row := r.db.QueryRow("SELECT "+vendorColumns+" FROM vendors WHERE id = ?", id)

	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return v, nil
}

// Create inserts a new vendor
func (r *Repository) Create(v *Vendor) error {
	now := time.Now().Format(time.RFC3339)

	_, err := r.db.Exec(`
		INSERT INTO vendors (id, name, contact_email, performance_score,
			on_time_delivery, quality_score, cost_performance, communication_score,
			trend, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.ContactEmail, v.PerformanceScore,
		v.Scores.OnTime, v.Scores.Quality, v.Scores.Cost, v.Scores.Communication,
		v.Trend, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	return nil
}

// UpdateScores persists the four sub-scores and the composite for a vendor
func (r *Repository) UpdateScores(id string, scores ScoreInput, composite int) error {
	now := time.Now().Format(time.RFC3339)

	result, err := r.db.Exec(`
		UPDATE vendors
		SET on_time_delivery = ?, quality_score = ?, cost_performance = ?,
			communication_score = ?, performance_score = ?, updated_at = ?
		WHERE id = ?`,
		scores.OnTime, scores.Quality, scores.Cost, scores.Communication,
		composite, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update vendor scores: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrVendorNotFound
	}

	return nil
}

// ActiveAlerts returns active alert messages keyed by vendor ID
func (r *Repository) ActiveAlerts() (map[string][]string, error) {
	rows, err := r.db.Query(`
		SELECT vendor_id, message FROM vendor_alerts
		WHERE is_active = 1
		ORDER BY vendor_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor alerts: %w", err)
	}
	defer rows.Close()

	alerts := make(map[string][]string)
	for rows.Next() {
		var vendorID, message string
		if err := rows.Scan(&vendorID, &message); err != nil {
			return nil, fmt.Errorf("failed to scan vendor alert: %w", err)
		}
		alerts[vendorID] = append(alerts[vendorID], message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendor alerts: %w", err)
	}

	return alerts, nil
}

// CreateAlert inserts a new vendor alert
func (r *Repository) CreateAlert(a *Alert) error {
	now := time.Now().Format(time.RFC3339)

	active := 0
	if a.IsActive {
		active = 1
	}

	_, err := r.db.Exec(`
		INSERT INTO vendor_alerts (vendor_id, alert_type, message, severity, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.VendorID, a.Type, a.Message, a.Severity, active, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create vendor alert: %w", err)
	}

	return nil
}

// Name returns a vendor name by ID, or empty string when unknown.
// Used by the projects module to label work packages.
func (r *Repository) Name(id string) (string, error) {
	var name string
	err := r.db.QueryRow("SELECT name FROM vendors WHERE id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get vendor name: %w", err)
	}
	return name, nil
}

// RecalculateComposites recomputes the stored composite for every vendor from
// its stored sub-scores and returns the number of rows that changed. Rows
// edited out-of-band (seed scripts, manual SQL) drift from the scoring
// formula; this brings them back in line.
func (r *Repository) RecalculateComposites() (int, error) {
	vendors, err := r.List()
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, v := range vendors {
		composite := CompositeScore(v.Scores)
		if composite == v.PerformanceScore {
			continue
		}

		if err := r.UpdateScores(v.ID, v.Scores, composite); err != nil {
			return changed, fmt.Errorf("failed to recalculate vendor %s: %w", v.ID, err)
		}

		r.log.Info().
			Str("vendor_id", v.ID).
			Int("old_score", v.PerformanceScore).
			Int("new_score", composite).
			Msg("Corrected stored composite score")
		changed++
	}

	return changed, nil
}
