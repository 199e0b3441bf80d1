package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Organisation snapshots and plans are document-shaped (deeply nested arrays
// consumed whole by the engine); they are stored as JSON payloads beside the
// key columns the repositories query on.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		taken_at   TEXT NOT NULL,
		payload    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL,
		variant           TEXT NOT NULL DEFAULT 'working'
		                  CHECK(variant IN ('working','baseline')),
		version_ts        TEXT NOT NULL,
		name              TEXT NOT NULL,
		start_date        TEXT NOT NULL,
		end_date          TEXT NOT NULL,
		duration_months   INTEGER NOT NULL DEFAULT 0,
		actual_data_until TEXT,
		strategic_fit     REAL,
		risk_score        REAL,
		payload           TEXT NOT NULL,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		UNIQUE(project_id, variant, version_ts)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_project ON plans(project_id)`,

	`CREATE TABLE IF NOT EXISTS capacity_overrides (
		id            TEXT PRIMARY KEY,
		role_uid      INTEGER NOT NULL,
		start_of_year TEXT NOT NULL,
		months        TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_capacity_overrides_role ON capacity_overrides(role_uid)`,
}
