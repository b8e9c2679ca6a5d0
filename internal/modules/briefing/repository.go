package briefing

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNoBriefs is returned when no brief has been generated yet
var ErrNoBriefs = errors.New("no briefs generated")

// Schema for stored brief snapshots. Each brief is a single msgpack-encoded
// blob: briefs are written once and read back whole, never queried by field.
const Schema = `
CREATE TABLE IF NOT EXISTS briefs (
    id INTEGER PRIMARY KEY,
    project_id TEXT NOT NULL,
    generated_at TEXT NOT NULL,
    payload BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_briefs_project ON briefs(project_id, generated_at);
`

// InitSchema ensures the briefs table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}

// Repository handles brief snapshot storage
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new brief repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "briefing").Logger(),
	}
}

// Save stores a brief snapshot
func (r *Repository) Save(brief *Brief) error {
	payload, err := msgpack.Marshal(brief)
	if err != nil {
		return fmt.Errorf("failed to encode brief: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO briefs (project_id, generated_at, payload)
		VALUES (?, ?, ?)`,
		brief.ProjectID, brief.GeneratedAt.Format(time.RFC3339), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to store brief: %w", err)
	}

	return nil
}

// Latest returns the most recently generated brief for a project
func (r *Repository) Latest(projectID string) (*Brief, error) {
	var payload []byte
	err := r.db.QueryRow(`
		SELECT payload FROM briefs
		WHERE project_id = ?
		ORDER BY generated_at DESC, id DESC
		LIMIT 1`, projectID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBriefs
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest brief: %w", err)
	}

	var brief Brief
	if err := msgpack.Unmarshal(payload, &brief); err != nil {
		return nil, fmt.Errorf("failed to decode brief: %w", err)
	}

	return &brief, nil
}

// Count returns the number of stored briefs for a project
func (r *Repository) Count(projectID string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM briefs WHERE project_id = ?", projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count briefs: %w", err)
	}
	return count, nil
}
