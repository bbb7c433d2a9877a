package db

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultUsers creates the two accounts every install starts with: the
// front-desk executive and the shop manager. Existing usernames are left
// untouched so re-running is safe.
func SeedDefaultUsers(database *sql.DB) error {
	users := []struct{ id, username, password, role, name string }{
		{"USR-001", "ejecutivo", "123", "Ejecutivo", "Ejecutivo de Cuenta"},
		{"USR-002", "gerente", "123", "Gerente", "Gerente del Taller"},
	}

	for _, u := range users {
		var count int
		if err := database.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", u.username).Scan(&count); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		if _, err := database.Exec(
			"INSERT INTO users (id, username, password_hash, role, display_name) VALUES (?, ?, ?, ?, ?)",
			u.id, u.username, string(hash), u.role, u.name,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	return nil
}

// SeedFixtures populates the database with development fixtures: a technician,
// a few customers and vehicles, and an intake in progress with a priced ledger.
func SeedFixtures(database *sql.DB) error {
	if err := SeedDefaultUsers(database); err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)

	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed technician: %w", err)
	}
	if _, err := database.Exec(
		"INSERT INTO users (id, username, password_hash, role, display_name) VALUES (?, ?, ?, 'Tecnico', ?)",
		"USR-003", "rmendez", string(hash), "Raúl Méndez",
	); err != nil {
		return fmt.Errorf("seed technician: %w", err)
	}

	customers := []struct{ id, name, phone, email string }{
		{"CUST-001", "María González", "555-0134", "maria.gonzalez@example.com"},
		{"CUST-002", "Pedro Ramírez", "555-0177", ""},
	}
	for _, c := range customers {
		if _, err := database.Exec(
			"INSERT INTO customers (id, name, phone, email, created_at) VALUES (?, ?, ?, NULLIF(?, ''), ?)",
			c.id, c.name, c.phone, c.email, now,
		); err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
	}

	vehicles := []struct{ id, make, model, plate, year, color string }{
		{"VEH-001", "Nissan", "Versa", "ABC-123-D", "2019", "Rojo"},
		{"VEH-002", "Toyota", "Hilux", "XYZ-987-F", "2022", "Blanco"},
	}
	for _, v := range vehicles {
		if _, err := database.Exec(
			"INSERT INTO vehicles (id, make, model, plate, year, color, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			v.id, v.make, v.model, v.plate, v.year, v.color, now,
		); err != nil {
			return fmt.Errorf("seed vehicles: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO intakes (id, customer_id, vehicle_id, status, reason, assigned_to, created_at) VALUES (?, ?, ?, 'Diagnóstico', ?, ?, ?)",
		"ING-001", "CUST-001", "VEH-001", "Golpe en la puerta trasera izquierda, pintura levantada", "USR-003", now,
	); err != nil {
		return fmt.Errorf("seed intakes: %w", err)
	}

	logEntries := []struct{ id, category, description string }{
		{"LOG-001", "Ingreso", "Vehículo ingresado al taller. Motivo: Golpe en la puerta trasera izquierda, pintura levantada"},
		{"LOG-002", "Asignación", "Servicio asignado a Raúl Méndez (USR-003)"},
		{"LOG-003", "Cambio de estado", "Estado actualizado a: Diagnóstico"},
	}
	for _, e := range logEntries {
		if _, err := database.Exec(
			"INSERT INTO service_log (id, intake_id, category, description, actor, timestamp) VALUES (?, 'ING-001', ?, ?, 'USR-002', ?)",
			e.id, e.category, e.description, now,
		); err != nil {
			return fmt.Errorf("seed service log: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO payment_ledger (id, intake_id, total, paid, status, created_at) VALUES (?, 'ING-001', 4500, 0, 'Pendiente', ?)",
		"PAY-001", now,
	); err != nil {
		return fmt.Errorf("seed payment ledger: %w", err)
	}

	return nil
}
