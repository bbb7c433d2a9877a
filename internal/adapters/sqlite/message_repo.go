package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/taller/internal/ports/secondary"
)

// MessageRepository implements secondary.MessageRepository with SQLite.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageSelectCols = "id, intake_id, sender, recipient, body, category, read, timestamp"

func scanMessage(scanner interface {
	Scan(dest ...any) error
}) (*secondary.MessageRecord, error) {
	var (
		read      int
		timestamp time.Time
	)

	record := &secondary.MessageRecord{}
	err := scanner.Scan(&record.ID, &record.IntakeID, &record.Sender, &record.Recipient,
		&record.Body, &record.Category, &read, &timestamp)
	if err != nil {
		return nil, err
	}

	record.Read = read == 1
	record.Timestamp = timestamp.Format(time.RFC3339)

	return record, nil
}

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (id, intake_id, sender, recipient, body, category) VALUES (?, ?, ?, ?, ?, ?)",
		message.ID, message.IntakeID, message.Sender, message.Recipient, message.Body, message.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by its ID.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+messageSelectCols+" FROM messages WHERE id = ?", id)

	record, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return record, nil
}

// List retrieves messages for a recipient, newest first.
func (r *MessageRepository) List(ctx context.Context, filters secondary.MessageFilters) ([]*secondary.MessageRecord, error) {
	query := "SELECT " + messageSelectCols + " FROM messages WHERE recipient = ?"
	args := []any{filters.Recipient}

	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	if filters.UnreadOnly {
		query += " AND read = 0"
	}

	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*secondary.MessageRecord
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, record)
	}

	return messages, nil
}

// MarkRead marks a message as read.
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE messages SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("message %s not found", id)
	}

	return nil
}

// MarkAllRead marks all unread messages of a category as read for a
// recipient. An empty category covers both.
func (r *MessageRepository) MarkAllRead(ctx context.Context, recipientID, category string) error {
	query := "UPDATE messages SET read = 1 WHERE recipient = ? AND read = 0"
	args := []any{recipientID}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}

	return nil
}

// GetUnreadCount returns the count of unread messages for a recipient,
// optionally narrowed to a category.
func (r *MessageRepository) GetUnreadCount(ctx context.Context, recipientID, category string) (int, error) {
	query := "SELECT COUNT(*) FROM messages WHERE recipient = ? AND read = 0"
	args := []any{recipientID}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

// GetNextID returns the next available message ID.
func (r *MessageRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(REPLACE(id, 'MSG-', '') AS INTEGER)), 0) FROM messages",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next message ID: %w", err)
	}

	return fmt.Sprintf("MSG-%03d", maxID+1), nil
}

// Ensure MessageRepository implements the interface.
var _ secondary.MessageRepository = (*MessageRepository)(nil)
