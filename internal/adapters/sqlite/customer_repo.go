package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// CustomerRepository implements secondary.CustomerRepository with SQLite.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new SQLite customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerSelectCols = "id, name, phone, email, address, active, created_at"

func scanCustomer(scanner interface {
	Scan(dest ...any) error
}) (*secondary.CustomerRecord, error) {
	var (
		email     sql.NullString
		address   sql.NullString
		activeInt int
		createdAt time.Time
	)

	record := &secondary.CustomerRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &record.Phone, &email, &address, &activeInt, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Email = email.String
	record.Address = address.String
	record.Active = activeInt == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create persists a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *secondary.CustomerRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (id, name, phone, email, address, active) VALUES (?, ?, ?, ?, ?, 1)",
		customer.ID, customer.Name, customer.Phone, nullable(customer.Email), nullable(customer.Address),
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by its ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*secondary.CustomerRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+customerSelectCols+" FROM customers WHERE id = ?", id)

	record, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return record, nil
}

// Update updates a customer's contact details.
func (r *CustomerRepository) Update(ctx context.Context, customer *secondary.CustomerRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE customers SET name = ?, phone = ?, email = ?, address = ? WHERE id = ?",
		customer.Name, customer.Phone, nullable(customer.Email), nullable(customer.Address), customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("customer %s not found", customer.ID)
	}

	return nil
}

// List retrieves customers, optionally including inactive ones.
func (r *CustomerRepository) List(ctx context.Context, includeInactive bool) ([]*secondary.CustomerRecord, error) {
	query := "SELECT " + customerSelectCols + " FROM customers"
	if !includeInactive {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*secondary.CustomerRecord
	for rows.Next() {
		record, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, record)
	}

	return customers, nil
}

// Search matches active customers by name or phone fragment.
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]*secondary.CustomerRecord, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+customerSelectCols+" FROM customers WHERE active = 1 AND (name LIKE ? OR phone LIKE ?) ORDER BY id",
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()

	var customers []*secondary.CustomerRecord
	for rows.Next() {
		record, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, record)
	}

	return customers, nil
}

// Deactivate soft-deletes a customer.
func (r *CustomerRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE customers SET active = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("customer %s not found", id)
	}

	return nil
}

// GetNextID returns the next available customer ID.
func (r *CustomerRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'CUST-', '') AS INTEGER)), 0) FROM customers",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next customer ID: %w", err)
	}

	return fmt.Sprintf("CUST-%03d", maxID+1), nil
}

// Ensure CustomerRepository implements the interface.
var _ secondary.CustomerRepository = (*CustomerRepository)(nil)
