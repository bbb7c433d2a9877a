package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// VehicleRepository implements secondary.VehicleRepository with SQLite.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new SQLite vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleSelectCols = "id, make, model, plate, year, color, active, created_at"

func scanVehicle(scanner interface {
	Scan(dest ...any) error
}) (*secondary.VehicleRecord, error) {
	var (
		year      sql.NullString
		color     sql.NullString
		activeInt int
		createdAt time.Time
	)

	record := &secondary.VehicleRecord{}
	err := scanner.Scan(&record.ID, &record.Make, &record.Model, &record.Plate, &year, &color, &activeInt, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Year = year.String
	record.Color = color.String
	record.Active = activeInt == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *secondary.VehicleRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vehicles (id, make, model, plate, year, color, active) VALUES (?, ?, ?, ?, ?, ?, 1)",
		vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Plate, nullable(vehicle.Year), nullable(vehicle.Color),
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// GetByID retrieves a vehicle by its ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*secondary.VehicleRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+vehicleSelectCols+" FROM vehicles WHERE id = ?", id)

	record, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return record, nil
}

// Update updates a vehicle's details.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *secondary.VehicleRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE vehicles SET make = ?, model = ?, plate = ?, year = ?, color = ? WHERE id = ?",
		vehicle.Make, vehicle.Model, vehicle.Plate, nullable(vehicle.Year), nullable(vehicle.Color), vehicle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID)
	}

	return nil
}

// List retrieves vehicles, optionally including inactive ones.
func (r *VehicleRepository) List(ctx context.Context, includeInactive bool) ([]*secondary.VehicleRecord, error) {
	query := "SELECT " + vehicleSelectCols + " FROM vehicles"
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*secondary.VehicleRecord
	for rows.Next() {
		record, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, record)
	}

	return vehicles, nil
}

// Search matches active vehicles by make, model or plate fragment.
func (r *VehicleRepository) Search(ctx context.Context, query string) ([]*secondary.VehicleRecord, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vehicleSelectCols+" FROM vehicles WHERE active = 1 AND (make LIKE ? OR model LIKE ? OR plate LIKE ?) ORDER BY id",
		pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*secondary.VehicleRecord
	for rows.Next() {
		record, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, record)
	}

	return vehicles, nil
}

// Deactivate soft-deletes a vehicle, releasing its plate.
func (r *VehicleRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE vehicles SET active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate vehicle: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("vehicle %s not found", id)
	}

	return nil
}

// ActivePlateExists checks whether an active vehicle other than excludeID
// already holds the plate.
func (r *VehicleRepository) ActivePlateExists(ctx context.Context, plate, excludeID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vehicles WHERE plate = ? AND active = 1 AND id != ?",
		plate, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check plate: %w", err)
	}

	return count > 0, nil
}

// GetNextID returns the next available vehicle ID.
func (r *VehicleRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'VEH-', '') AS INTEGER)), 0) FROM vehicles",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next vehicle ID: %w", err)
	}

	return fmt.Sprintf("VEH-%03d", maxID+1), nil
}

// Ensure VehicleRepository implements the interface.
var _ secondary.VehicleRepository = (*VehicleRepository)(nil)
