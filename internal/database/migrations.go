package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the embedded schema, applied in version order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_technicians",
		SQL: `
			CREATE TABLE IF NOT EXISTS technicians (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				active INTEGER NOT NULL DEFAULT 1,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS technician_configs (
				technician_id INTEGER PRIMARY KEY REFERENCES technicians(id),
				takes_vehicle_home INTEGER NOT NULL DEFAULT 0,
				home_lat REAL,
				home_lon REAL,
				home_address TEXT,
				office_lat REAL NOT NULL,
				office_lon REAL NOT NULL,
				office_address TEXT,
				geofences_json TEXT,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_vehicle_segments",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicle_segments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				technician_id INTEGER NOT NULL REFERENCES technicians(id),
				date TEXT NOT NULL,
				start_time TIMESTAMP NOT NULL,
				end_time TIMESTAMP,
				start_lat REAL NOT NULL,
				start_lon REAL NOT NULL,
				start_address TEXT,
				end_lat REAL,
				end_lon REAL,
				end_address TEXT,
				complete INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_segments_tech_date ON vehicle_segments(technician_id, date);
		`,
	},
	{
		Version: 3,
		Name:    "create_jobs",
		SQL: `
			CREATE TABLE IF NOT EXISTS jobs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				technician_id INTEGER NOT NULL REFERENCES technicians(id),
				date TEXT NOT NULL,
				job_number TEXT NOT NULL,
				customer TEXT,
				scheduled_at TIMESTAMP NOT NULL,
				site_lat REAL,
				site_lon REAL,
				address TEXT,
				first_of_day INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_jobs_tech_date ON jobs(technician_id, date);
		`,
	},
	{
		Version: 4,
		Name:    "create_punches",
		SQL: `
			CREATE TABLE IF NOT EXISTS punches (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				technician_id INTEGER NOT NULL REFERENCES technicians(id),
				date TEXT NOT NULL,
				kind TEXT NOT NULL,
				timestamp TIMESTAMP NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_punches_tech_date ON punches(technician_id, date);
		`,
	},
	{
		Version: 5,
		Name:    "create_home_suggestions",
		SQL: `
			CREATE TABLE IF NOT EXISTS home_suggestions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				technician_id INTEGER NOT NULL REFERENCES technicians(id),
				lat REAL NOT NULL,
				lon REAL NOT NULL,
				address TEXT,
				confidence TEXT NOT NULL,
				supporting_days INTEGER NOT NULL,
				total_days INTEGER NOT NULL,
				confirmed INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_suggestions_tech ON home_suggestions(technician_id);
		`,
	},
	{
		Version: 6,
		Name:    "create_analysis_tasks",
		SQL: `
			CREATE TABLE IF NOT EXISTS analysis_tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				request_id TEXT NOT NULL UNIQUE,
				kind TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				progress_percent INTEGER NOT NULL DEFAULT 0,
				params_json TEXT,
				total_items INTEGER NOT NULL DEFAULT 0,
				processed_items INTEGER NOT NULL DEFAULT 0,
				failed_items INTEGER NOT NULL DEFAULT 0,
				result_summary TEXT,
				error_message TEXT,
				created_by TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				started_at TIMESTAMP,
				completed_at TIMESTAMP
			);
		`,
	},
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Printf("Applying migration %d: %s", m.Version, m.Name)
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
