package primary

import "context"

// MessageService defines the primary port for the task/report channel.
type MessageService interface {
	// SendTask sends a manager task to the intake's assigned technician.
	SendTask(ctx context.Context, intakeID, body string) (*Message, error)

	// SendReport sends a technician report to the shop manager.
	SendReport(ctx context.Context, intakeID, body string) (*Message, error)

	// GetMessage retrieves a message by ID.
	GetMessage(ctx context.Context, messageID string) (*Message, error)

	// ListInbox lists messages for a recipient, optionally filtered by
	// category and unread state.
	ListInbox(ctx context.Context, filters InboxFilters) ([]*Message, error)

	// MarkRead marks one message as read. Idempotent; a read message
	// never becomes unread again.
	MarkRead(ctx context.Context, messageID string) error

	// MarkAllRead marks every unread message of a category as read for
	// a recipient. Idempotent.
	MarkAllRead(ctx context.Context, recipientID, category string) error

	// UnreadCount returns the number of unread messages of a category
	// for a recipient. An empty category counts everything.
	UnreadCount(ctx context.Context, recipientID, category string) (int, error)
}

// Message is one task or report scoped to an intake.
type Message struct {
	ID        string
	IntakeID  string
	Sender    string
	Recipient string
	Body      string
	Category  string // Tarea or Reporte
	Read      bool
	Timestamp string
}

// InboxFilters contains filter options for listing a recipient's messages.
type InboxFilters struct {
	RecipientID string
	Category    string // optional
	UnreadOnly  bool
}
