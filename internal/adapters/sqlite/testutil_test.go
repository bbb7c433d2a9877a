// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/taller/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id, username, role string) string {
	t.Helper()
	if id == "" {
		id = "USR-001"
	}
	if username == "" {
		username = "testuser"
	}
	if role == "" {
		role = "Gerente"
	}
	_, err := db.Exec(
		"INSERT INTO users (id, username, password_hash, display_name, role) VALUES (?, ?, 'x', ?, ?)",
		id, username, username, role)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedCustomer inserts a test customer and returns its ID.
func seedCustomer(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "CUST-001"
	}
	if name == "" {
		name = "Test Customer"
	}
	_, err := db.Exec("INSERT INTO customers (id, name, phone) VALUES (?, ?, '555-0100')", id, name)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return id
}

// seedVehicle inserts a test vehicle and returns its ID.
func seedVehicle(t *testing.T, db *sql.DB, id, plate string) string {
	t.Helper()
	if id == "" {
		id = "VEH-001"
	}
	if plate == "" {
		plate = "ABC-123"
	}
	_, err := db.Exec(
		"INSERT INTO vehicles (id, make, model, plate, year) VALUES (?, 'Toyota', 'Corolla', ?, '2020')",
		id, plate)
	if err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}
	return id
}

// seedIntake inserts a test intake and returns its ID.
func seedIntake(t *testing.T, db *sql.DB, id, customerID, vehicleID string) string {
	t.Helper()
	if id == "" {
		id = "ING-001"
	}
	if customerID == "" {
		customerID = "CUST-001"
	}
	if vehicleID == "" {
		vehicleID = "VEH-001"
	}
	_, err := db.Exec(
		"INSERT INTO intakes (id, customer_id, vehicle_id, status, reason) VALUES (?, ?, ?, 'Ingreso', 'Golpe en defensa')",
		id, customerID, vehicleID)
	if err != nil {
		t.Fatalf("failed to seed intake: %v", err)
	}
	return id
}
