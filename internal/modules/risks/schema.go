package risks

import "database/sql"

// Schema for risks and their mitigation options. References work_packages,
// so the projects schema must be applied first.
const Schema = `
CREATE TABLE IF NOT EXISTS risks (
    id TEXT PRIMARY KEY,
    work_package_id TEXT NOT NULL REFERENCES work_packages(id),
    title TEXT NOT NULL,
    description TEXT,
    impact_cost REAL NOT NULL DEFAULT 0,
    impact_days REAL NOT NULL DEFAULT 0,
    probability INTEGER NOT NULL DEFAULT 0,
    risk_level TEXT NOT NULL DEFAULT 'MEDIUM',
    reasoning TEXT,
    confidence_level INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mitigations (
    id INTEGER PRIMARY KEY,
    risk_id TEXT NOT NULL REFERENCES risks(id),
    title TEXT NOT NULL,
    description TEXT,
    cost REAL NOT NULL DEFAULT 0,
    time_to_implement TEXT,
    risk_reduction_percentage INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'proposed',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_risks_work_package ON risks(work_package_id);
CREATE INDEX IF NOT EXISTS idx_risks_impact_cost ON risks(impact_cost);
CREATE INDEX IF NOT EXISTS idx_mitigations_risk ON mitigations(risk_id);
`

// InitSchema ensures the risks tables exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
