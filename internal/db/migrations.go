package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "drop_legacy_facturacion_table",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "scope_plate_uniqueness_to_active_vehicles",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_notes_column_to_payment_ledger",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		// Record migration
		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 removes the retired facturacion table. Early installs carried
// both it and the unified payment_ledger; payment_ledger is the only one
// ever written to, so nothing is copied over.
func migrationV1(db *sql.DB) error {
	_, err := db.Exec("DROP TABLE IF EXISTS facturacion")
	if err != nil {
		return fmt.Errorf("failed to drop facturacion table: %w", err)
	}
	return nil
}

// migrationV2 replaces the global UNIQUE constraint on vehicles.plate with a
// partial index so a soft-deleted vehicle releases its plate. SQLite cannot
// drop a column constraint in place, so the table is rebuilt.
func migrationV2(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE vehicles_new (
			id TEXT PRIMARY KEY,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			plate TEXT NOT NULL,
			year TEXT,
			color TEXT,
			active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`INSERT INTO vehicles_new SELECT id, make, model, plate, year, color, active, created_at FROM vehicles`,
		`DROP TABLE vehicles`,
		`ALTER TABLE vehicles_new RENAME TO vehicles`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_active_plate ON vehicles(plate) WHERE active = 1`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to rebuild vehicles table: %w", err)
		}
	}
	return nil
}

// migrationV3 adds the free-text notes column to payment_ledger.
func migrationV3(db *sql.DB) error {
	_, err := db.Exec("ALTER TABLE payment_ledger ADD COLUMN notes TEXT")
	if err != nil {
		return fmt.Errorf("failed to add notes column: %w", err)
	}
	return nil
}
