package vendors

import "database/sql"

// Schema for vendors and their alerts. Vendors have no foreign keys of their
// own, so this schema must be applied before work_packages.
const Schema = `
CREATE TABLE IF NOT EXISTS vendors (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    contact_email TEXT,
    performance_score INTEGER NOT NULL DEFAULT 0,
    on_time_delivery REAL NOT NULL DEFAULT 0,
    quality_score REAL NOT NULL DEFAULT 0,
    cost_performance REAL NOT NULL DEFAULT 0,
    communication_score REAL NOT NULL DEFAULT 0,
    trend TEXT NOT NULL DEFAULT 'stable',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vendor_alerts (
    id INTEGER PRIMARY KEY,
    vendor_id TEXT NOT NULL REFERENCES vendors(id),
    alert_type TEXT NOT NULL,
    message TEXT NOT NULL,
    severity TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vendor_alerts_vendor ON vendor_alerts(vendor_id);
CREATE INDEX IF NOT EXISTS idx_vendor_alerts_active ON vendor_alerts(is_active);
`

// InitSchema ensures the vendors tables exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
