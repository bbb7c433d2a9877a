package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// LedgerRepository implements secondary.LedgerRepository with SQLite.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new SQLite ledger repository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const ledgerSelectCols = "id, intake_id, total, paid, status, created_at, last_amount, last_method, last_paid_at, last_actor, history, notes"

func scanLedger(scanner interface {
	Scan(dest ...any) error
}) (*secondary.LedgerRecord, error) {
	var (
		createdAt  time.Time
		lastMethod sql.NullString
		lastPaidAt sql.NullTime
		lastActor  sql.NullString
		history    sql.NullString
		notes      sql.NullString
	)

	record := &secondary.LedgerRecord{}
	err := scanner.Scan(&record.ID, &record.IntakeID, &record.Total, &record.Paid,
		&record.Status, &createdAt, &record.LastAmount, &lastMethod, &lastPaidAt,
		&lastActor, &history, &notes)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.LastMethod = lastMethod.String
	record.LastActor = lastActor.String
	record.History = history.String
	record.Notes = notes.String
	if lastPaidAt.Valid {
		record.LastPaidAt = lastPaidAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a fresh ledger.
func (r *LedgerRepository) Create(ctx context.Context, ledger *secondary.LedgerRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO payment_ledger (id, intake_id, total, paid, status, notes) VALUES (?, ?, ?, ?, ?, ?)",
		ledger.ID, ledger.IntakeID, ledger.Total, ledger.Paid, ledger.Status, nullable(ledger.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}

	return nil
}

// GetByIntake retrieves the ledger for an intake.
func (r *LedgerRepository) GetByIntake(ctx context.Context, intakeID string) (*secondary.LedgerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+ledgerSelectCols+" FROM payment_ledger WHERE intake_id = ?", intakeID)

	record, err := scanLedger(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	return record, nil
}

// UpdatePrice updates the total and the recomputed status.
func (r *LedgerRepository) UpdatePrice(ctx context.Context, id string, total float64, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE payment_ledger SET total = ?, status = ? WHERE id = ?", total, status, id)
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("ledger %s not found", id)
	}

	return nil
}

// ApplyPayment persists the whole post-payment state in one statement so
// the paid total, status and history never drift apart.
func (r *LedgerRepository) ApplyPayment(ctx context.Context, update *secondary.PaymentUpdate) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payment_ledger
		SET paid = ?, status = ?, last_amount = ?, last_method = ?, last_paid_at = ?, last_actor = ?, history = ?
		WHERE id = ?`,
		update.Paid, update.Status, update.LastAmount, update.LastMethod,
		update.LastPaidAt, nullable(update.LastActor), update.History, update.LedgerID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply payment: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("ledger %s not found", update.LedgerID)
	}

	return nil
}

// List retrieves all ledgers, most recently created first.
func (r *LedgerRepository) List(ctx context.Context) ([]*secondary.LedgerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ledgerSelectCols+" FROM payment_ledger ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []*secondary.LedgerRecord
	for rows.Next() {
		record, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		ledgers = append(ledgers, record)
	}

	return ledgers, nil
}

// SummarizeSince aggregates billed and paid totals for ledgers created at
// or after the given timestamp.
func (r *LedgerRepository) SummarizeSince(ctx context.Context, since string) (float64, float64, error) {
	var billed, paid float64
	// datetime() normalizes both the stored CURRENT_TIMESTAMP format and
	// an RFC3339 cutoff before comparing.
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total), 0), COALESCE(SUM(paid), 0) FROM payment_ledger WHERE datetime(created_at) >= datetime(?)", since,
	).Scan(&billed, &paid)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to summarize ledgers: %w", err)
	}

	return billed, paid, nil
}

// CountByStatus returns the number of ledgers per status.
func (r *LedgerRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM payment_ledger GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count ledgers: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan ledger count: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

// GetNextID returns the next available ledger ID.
func (r *LedgerRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'PAY-', '') AS INTEGER)), 0) FROM payment_ledger",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next ledger ID: %w", err)
	}

	return fmt.Sprintf("PAY-%03d", maxID+1), nil
}

// Ensure LedgerRepository implements the interface.
var _ secondary.LedgerRepository = (*LedgerRepository)(nil)
