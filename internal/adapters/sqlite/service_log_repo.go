package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// ServiceLogRepository implements secondary.ServiceLogRepository with SQLite.
// The table is append-only; there are no update or delete paths.
type ServiceLogRepository struct {
	db *sql.DB
}

// NewServiceLogRepository creates a new SQLite service log repository.
func NewServiceLogRepository(db *sql.DB) *ServiceLogRepository {
	return &ServiceLogRepository{db: db}
}

// Append persists a new log entry.
func (r *ServiceLogRepository) Append(ctx context.Context, entry *secondary.ServiceLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO service_log (id, intake_id, category, description, actor) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.IntakeID, entry.Category, entry.Description, entry.Actor,
	)
	if err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}

	return nil
}

// ListByIntake retrieves an intake's entries ordered by time.
func (r *ServiceLogRepository) ListByIntake(ctx context.Context, intakeID string) ([]*secondary.ServiceLogRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.intake_id, l.category, l.description, l.timestamp, l.actor, u.display_name
		FROM service_log l
		JOIN users u ON u.id = l.actor
		WHERE l.intake_id = ?
		ORDER BY l.timestamp, l.id`, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ServiceLogRecord
	for rows.Next() {
		var timestamp time.Time
		entry := &secondary.ServiceLogRecord{}
		err := rows.Scan(&entry.ID, &entry.IntakeID, &entry.Category, &entry.Description,
			&timestamp, &entry.Actor, &entry.ActorName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entry.Timestamp = timestamp.Format(time.RFC3339)
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetNextID returns the next available log entry ID.
func (r *ServiceLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'LOG-', '') AS INTEGER)), 0) FROM service_log",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next log ID: %w", err)
	}

	return fmt.Sprintf("LOG-%03d", maxID+1), nil
}

// Ensure ServiceLogRepository implements the interface.
var _ secondary.ServiceLogRepository = (*ServiceLogRepository)(nil)
