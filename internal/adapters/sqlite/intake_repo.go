package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// IntakeRepository implements secondary.IntakeRepository with SQLite.
type IntakeRepository struct {
	db *sql.DB
}

// NewIntakeRepository creates a new SQLite intake repository.
func NewIntakeRepository(db *sql.DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

// intakeSelect joins the display names the role views show next to every
// intake row. assigned_to stays LEFT JOINed because new intakes have no
// technician yet.
const intakeSelect = `
	SELECT i.id, i.customer_id, c.name, i.vehicle_id, v.make, v.model, v.plate,
	       i.status, i.created_at, i.completed_at, i.assigned_to, u.display_name,
	       i.reason, i.deadline_days, i.deadline_hours, i.deadline_minutes,
	       i.deadline_start, i.deadline_active
	FROM intakes i
	JOIN customers c ON c.id = i.customer_id
	JOIN vehicles v ON v.id = i.vehicle_id
	LEFT JOIN users u ON u.id = i.assigned_to
`

func scanIntake(scanner interface {
	Scan(dest ...any) error
}) (*secondary.IntakeRecord, error) {
	var (
		createdAt      time.Time
		completedAt    sql.NullTime
		assignedTo     sql.NullString
		assignedName   sql.NullString
		days           sql.NullInt64
		hours          sql.NullInt64
		minutes        sql.NullInt64
		deadlineStart  sql.NullTime
		deadlineActive int
	)

	record := &secondary.IntakeRecord{}
	err := scanner.Scan(
		&record.ID, &record.CustomerID, &record.CustomerName,
		&record.VehicleID, &record.VehicleMake, &record.VehicleModel, &record.VehiclePlate,
		&record.Status, &createdAt, &completedAt, &assignedTo, &assignedName,
		&record.Reason, &days, &hours, &minutes, &deadlineStart, &deadlineActive,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.AssignedTo = assignedTo.String
	record.AssignedToName = assignedName.String
	record.DeadlineDays = int(days.Int64)
	record.DeadlineHours = int(hours.Int64)
	record.DeadlineMinutes = int(minutes.Int64)
	record.DeadlineActive = deadlineActive == 1

	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	if deadlineStart.Valid {
		record.DeadlineStart = deadlineStart.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new intake.
func (r *IntakeRepository) Create(ctx context.Context, intake *secondary.IntakeRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO intakes (id, customer_id, vehicle_id, status, reason) VALUES (?, ?, ?, ?, ?)",
		intake.ID, intake.CustomerID, intake.VehicleID, intake.Status, intake.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to create intake: %w", err)
	}

	return nil
}

// GetByID retrieves an intake by its ID.
func (r *IntakeRepository) GetByID(ctx context.Context, id string) (*secondary.IntakeRecord, error) {
	row := r.db.QueryRowContext(ctx, intakeSelect+" WHERE i.id = ?", id)

	record, err := scanIntake(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}

	return record, nil
}

// List retrieves intakes matching the given filters.
func (r *IntakeRepository) List(ctx context.Context, filters secondary.IntakeFilters) ([]*secondary.IntakeRecord, error) {
	query := intakeSelect + " WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND i.status = ?"
		args = append(args, filters.Status)
	}
	if filters.AssignedTo != "" {
		query += " AND i.assigned_to = ?"
		args = append(args, filters.AssignedTo)
	}
	if filters.UnassignedOnly {
		query += " AND i.assigned_to IS NULL"
	}

	query += " ORDER BY i.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list intakes: %w", err)
	}
	defer rows.Close()

	var intakes []*secondary.IntakeRecord
	for rows.Next() {
		record, err := scanIntake(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intake: %w", err)
		}
		intakes = append(intakes, record)
	}

	return intakes, nil
}

// AssignTechnician sets the intake's technician reference.
func (r *IntakeRepository) AssignTechnician(ctx context.Context, intakeID, technicianID string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE intakes SET assigned_to = ? WHERE id = ?", technicianID, intakeID)
	if err != nil {
		return fmt.Errorf("failed to assign technician: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("intake %s not found", intakeID)
	}

	return nil
}

// UpdateStatus updates the status and optionally stamps completed_at.
func (r *IntakeRepository) UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error {
	query := "UPDATE intakes SET status = ? WHERE id = ?"
	if setCompleted {
		query = "UPDATE intakes SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?"
	}

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update intake status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("intake %s not found", id)
	}

	return nil
}

// SetDeadline persists the deadline budget, start timestamp and active flag.
func (r *IntakeRepository) SetDeadline(ctx context.Context, id string, days, hours, minutes int, start string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE intakes SET deadline_days = ?, deadline_hours = ?, deadline_minutes = ?, deadline_start = ?, deadline_active = 1 WHERE id = ?",
		days, hours, minutes, start, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("intake %s not found", id)
	}

	return nil
}

// ClearDeadlineActive clears the active flag, keeping the budget fields.
func (r *IntakeRepository) ClearDeadlineActive(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE intakes SET deadline_active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to clear deadline: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("intake %s not found", id)
	}

	return nil
}

// ListActiveDeadlines retrieves every intake with an active persisted deadline.
func (r *IntakeRepository) ListActiveDeadlines(ctx context.Context) ([]*secondary.IntakeRecord, error) {
	rows, err := r.db.QueryContext(ctx, intakeSelect+" WHERE i.deadline_active = 1 AND i.deadline_start IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("failed to list active deadlines: %w", err)
	}
	defer rows.Close()

	var intakes []*secondary.IntakeRecord
	for rows.Next() {
		record, err := scanIntake(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intake: %w", err)
		}
		intakes = append(intakes, record)
	}

	return intakes, nil
}

// GetNextID returns the next available intake ID.
func (r *IntakeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'ING-', '') AS INTEGER)), 0) FROM intakes",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next intake ID: %w", err)
	}

	return fmt.Sprintf("ING-%03d", maxID+1), nil
}

// Ensure IntakeRepository implements the interface.
var _ secondary.IntakeRepository = (*IntakeRepository)(nil)
