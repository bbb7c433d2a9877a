// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectCols = "id, username, password_hash, role, display_name, active, created_at"

func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UserRecord, error) {
	var (
		activeInt int
		createdAt time.Time
	)

	record := &secondary.UserRecord{}
	err := scanner.Scan(&record.ID, &record.Username, &record.PasswordHash, &record.Role, &record.DisplayName, &activeInt, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Active = activeInt == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, role, display_name, active) VALUES (?, ?, ?, ?, ?, 1)",
		user.ID, user.Username, user.PasswordHash, user.Role, user.DisplayName,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userSelectCols+" FROM users WHERE id = ?", id)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return record, nil
}

// GetByUsername retrieves an active user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userSelectCols+" FROM users WHERE username = ? AND active = 1", username)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return record, nil
}

// List retrieves users matching the given filters.
func (r *UserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	query := "SELECT " + userSelectCols + " FROM users WHERE 1=1"
	args := []any{}

	if filters.Role != "" {
		query += " AND role = ?"
		args = append(args, filters.Role)
	}
	if filters.ActiveOnly {
		query += " AND active = 1"
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, record)
	}

	return users, nil
}

// Deactivate soft-deletes a user.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE users SET active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

// FirstActiveByRole returns the first active user holding a role.
func (r *UserRepository) FirstActiveByRole(ctx context.Context, role string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE role = ? AND active = 1 ORDER BY id LIMIT 1", role)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by role: %w", err)
	}

	return record, nil
}

// GetNextID returns the next available user ID.
func (r *UserRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'USR-', '') AS INTEGER)), 0) FROM users",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next user ID: %w", err)
	}

	return fmt.Sprintf("USR-%03d", maxID+1), nil
}

// Ensure UserRepository implements the interface.
var _ secondary.UserRepository = (*UserRepository)(nil)
