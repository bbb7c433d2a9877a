package db

// SchemaSQL is the complete schema for fresh taller installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL(), so a column referenced by repository code
// that does not exist here fails immediately with "no such column" instead of
// drifting silently.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Users (shop staff: front desk, manager, technicians)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('Ejecutivo', 'Gerente', 'Tecnico')),
	display_name TEXT NOT NULL,
	active INTEGER DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Customers (soft-deleted via active flag, never removed)
CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT,
	address TEXT,
	active INTEGER DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Vehicles (plate unique among active vehicles only; a soft-deleted
-- vehicle releases its plate for reuse)
CREATE TABLE IF NOT EXISTS vehicles (
	id TEXT PRIMARY KEY,
	make TEXT NOT NULL,
	model TEXT NOT NULL,
	plate TEXT NOT NULL,
	year TEXT,
	color TEXT,
	active INTEGER DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_active_plate ON vehicles(plate) WHERE active = 1;

-- Intakes (a vehicle entering the shop for service, bound to one customer)
CREATE TABLE IF NOT EXISTS intakes (
	id TEXT PRIMARY KEY,
	customer_id TEXT NOT NULL,
	vehicle_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Ingreso', 'Diagnóstico', 'Hojalatería', 'Pintura', 'Ensamble', 'Listo', 'Entregado')) DEFAULT 'Ingreso',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	assigned_to TEXT,
	reason TEXT NOT NULL,
	deadline_days INTEGER,
	deadline_hours INTEGER,
	deadline_minutes INTEGER,
	deadline_start DATETIME,
	deadline_active INTEGER DEFAULT 0,
	FOREIGN KEY (customer_id) REFERENCES customers(id),
	FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
	FOREIGN KEY (assigned_to) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_intakes_status ON intakes(status);
CREATE INDEX IF NOT EXISTS idx_intakes_assigned ON intakes(assigned_to);

-- Service log (append-only audit trail per intake; never mutated or deleted)
CREATE TABLE IF NOT EXISTS service_log (
	id TEXT PRIMARY KEY,
	intake_id TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	actor TEXT NOT NULL,
	FOREIGN KEY (intake_id) REFERENCES intakes(id),
	FOREIGN KEY (actor) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_service_log_intake ON service_log(intake_id);

-- Payment ledger (exactly one per intake; history is an ordered JSON list
-- of payment events)
CREATE TABLE IF NOT EXISTS payment_ledger (
	id TEXT PRIMARY KEY,
	intake_id TEXT NOT NULL UNIQUE,
	total REAL NOT NULL DEFAULT 0,
	paid REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('Pendiente', 'Parcial', 'Pagado')) DEFAULT 'Pendiente',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	last_amount REAL DEFAULT 0,
	last_method TEXT,
	last_paid_at DATETIME,
	last_actor TEXT,
	history TEXT,
	notes TEXT,
	FOREIGN KEY (intake_id) REFERENCES intakes(id),
	FOREIGN KEY (last_actor) REFERENCES users(id)
);

-- Messages (manager -> technician tasks, technician -> manager reports)
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	intake_id TEXT NOT NULL,
	sender TEXT NOT NULL,
	recipient TEXT NOT NULL,
	body TEXT NOT NULL,
	category TEXT NOT NULL CHECK(category IN ('Tarea', 'Reporte')),
	read INTEGER DEFAULT 0,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (intake_id) REFERENCES intakes(id),
	FOREIGN KEY (sender) REFERENCES users(id),
	FOREIGN KEY (recipient) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient, read);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create the modern schema directly and
		// mark all migrations as applied so they never run against it
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for i := 1; i <= len(migrations); i++ {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", i); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
