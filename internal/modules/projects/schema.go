package projects

import "database/sql"

// Schema for projects and work packages. work_packages references vendors,
// so the vendors schema must be applied first.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    budget REAL NOT NULL DEFAULT 0,
    start_date TEXT,
    end_date TEXT,
    status TEXT NOT NULL DEFAULT 'active',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS work_packages (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    name TEXT NOT NULL,
    budget REAL NOT NULL DEFAULT 0,
    completion_percentage REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'in-progress',
    risk_level TEXT NOT NULL DEFAULT 'LOW',
    vendor_id TEXT REFERENCES vendors(id),
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_work_packages_project ON work_packages(project_id);
CREATE INDEX IF NOT EXISTS idx_work_packages_vendor ON work_packages(vendor_id);
`

// InitSchema ensures the projects tables exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
