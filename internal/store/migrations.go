package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Form fields (key-value, one row per input field)
		`CREATE TABLE IF NOT EXISTS inputs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Generated pre-race reports; payload is the msgpack-encoded report
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			generated_at TEXT NOT NULL,
			race_name TEXT,
			distance_km REAL NOT NULL,
			realistic TEXT,
			risk_level TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at)`,

		// Post-race comparisons (at most one per report)
		`CREATE TABLE IF NOT EXISTS post_race_results (
			report_id TEXT PRIMARY KEY,
			actual_time TEXT NOT NULL,
			difference_pct REAL NOT NULL,
			payload BLOB NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
