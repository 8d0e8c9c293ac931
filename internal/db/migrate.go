package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; re-running
// the full list against an existing database is safe.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate re-applied ALTER TABLE statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS places (
		uuid         TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		name_en      TEXT NOT NULL DEFAULT '',
		country_code TEXT NOT NULL,
		lat          REAL NOT NULL,
		lng          REAL NOT NULL,
		metadata     TEXT NOT NULL DEFAULT '{}',
		extensions   TEXT NOT NULL DEFAULT '{}',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_places_country ON places(country_code)`,
	`CREATE INDEX IF NOT EXISTS idx_places_geo ON places(lat, lng)`,

	`CREATE TABLE IF NOT EXISTS route_directions (
		id              TEXT PRIMARY KEY,
		uuid            TEXT NOT NULL,
		country_code    TEXT NOT NULL,
		name            TEXT NOT NULL,
		name_cn         TEXT NOT NULL DEFAULT '',
		name_en         TEXT NOT NULL DEFAULT '',
		tags            TEXT NOT NULL DEFAULT '[]',
		regions         TEXT NOT NULL DEFAULT '[]',
		entry_hubs      TEXT NOT NULL DEFAULT '[]',
		seasonality     TEXT NOT NULL DEFAULT '{}',
		hard_constraints TEXT NOT NULL DEFAULT '{}',
		soft_constraints TEXT NOT NULL DEFAULT '{}',
		objectives      TEXT NOT NULL DEFAULT '{}',
		risk_profile    TEXT NOT NULL DEFAULT '{}',
		signature_pois  TEXT NOT NULL DEFAULT '{}',
		skeleton        TEXT NOT NULL DEFAULT '{}',
		corridor        TEXT,
		buffer_meters   REAL NOT NULL DEFAULT 0,
		status          TEXT NOT NULL DEFAULT 'draft'
		                CHECK(status IN ('draft','active','deprecated')),
		is_active       INTEGER NOT NULL DEFAULT 0,
		version         INTEGER NOT NULL DEFAULT 1,
		rollout_percent INTEGER NOT NULL DEFAULT 100
		                CHECK(rollout_percent BETWEEN 0 AND 100),
		audience        TEXT NOT NULL DEFAULT '{}',
		extensions      TEXT NOT NULL DEFAULT '{}',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_directions_country ON route_directions(country_code, status)`,
}
