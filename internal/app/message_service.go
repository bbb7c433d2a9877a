package app

import (
	"context"
	"fmt"

	"github.com/example/taller/internal/core/message"
	"github.com/example/taller/internal/ctxutil"
	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// MessageServiceImpl implements the MessageService interface.
type MessageServiceImpl struct {
	messageRepo secondary.MessageRepository
	intakeRepo  secondary.IntakeRepository
	userRepo    secondary.UserRepository
}

// NewMessageService creates a new MessageService with injected dependencies.
func NewMessageService(
	messageRepo secondary.MessageRepository,
	intakeRepo secondary.IntakeRepository,
	userRepo secondary.UserRepository,
) *MessageServiceImpl {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		intakeRepo:  intakeRepo,
		userRepo:    userRepo,
	}
}

// SendTask sends a manager task to the intake's assigned technician.
func (s *MessageServiceImpl) SendTask(ctx context.Context, intakeID, body string) (*primary.Message, error) {
	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}

	guard := message.CanSendTask(message.SendTaskContext{
		IntakeID:             intakeID,
		IntakeExists:         true,
		AssignedTechnicianID: record.AssignedTo,
		Body:                 body,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	return s.send(ctx, intakeID, record.AssignedTo, body, message.CategoryTask)
}

// SendReport sends a technician report to the shop manager.
func (s *MessageServiceImpl) SendReport(ctx context.Context, intakeID, body string) (*primary.Message, error) {
	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}

	manager, err := s.userRepo.FirstActiveByRole(ctx, primary.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manager: %w", err)
	}

	managerID := ""
	if manager != nil {
		managerID = manager.ID
	}
	guard := message.CanSendReport(message.SendReportContext{
		IntakeID:     intakeID,
		IntakeExists: true,
		ManagerID:    managerID,
		Body:         body,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	return s.send(ctx, intakeID, managerID, body, message.CategoryReport)
}

func (s *MessageServiceImpl) send(ctx context.Context, intakeID, recipient, body string, category message.Category) (*primary.Message, error) {
	nextID, err := s.messageRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	record := &secondary.MessageRecord{
		ID:        nextID,
		IntakeID:  intakeID,
		Sender:    ctxutil.ActorFromContext(ctx),
		Recipient: recipient,
		Body:      body,
		Category:  string(category),
	}
	if err := s.messageRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	created, err := s.messageRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created message: %w", err)
	}
	return recordToMessage(created), nil
}

// GetMessage retrieves a message by ID.
func (s *MessageServiceImpl) GetMessage(ctx context.Context, messageID string) (*primary.Message, error) {
	record, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: message %s", primary.ErrNotFound, messageID)
	}
	return recordToMessage(record), nil
}

// ListInbox lists messages for a recipient.
func (s *MessageServiceImpl) ListInbox(ctx context.Context, filters primary.InboxFilters) ([]*primary.Message, error) {
	records, err := s.messageRepo.List(ctx, secondary.MessageFilters{
		Recipient:  filters.RecipientID,
		Category:   filters.Category,
		UnreadOnly: filters.UnreadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*primary.Message, len(records))
	for i, r := range records {
		messages[i] = recordToMessage(r)
	}
	return messages, nil
}

// MarkRead marks one message as read. Idempotent.
func (s *MessageServiceImpl) MarkRead(ctx context.Context, messageID string) error {
	record, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: message %s", primary.ErrNotFound, messageID)
	}

	if err := s.messageRepo.MarkRead(ctx, messageID); err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread message of a category as read for a
// recipient. Idempotent.
func (s *MessageServiceImpl) MarkAllRead(ctx context.Context, recipientID, category string) error {
	if err := s.messageRepo.MarkAllRead(ctx, recipientID, category); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// UnreadCount returns the number of unread messages of a category for a
// recipient. An empty category counts everything.
func (s *MessageServiceImpl) UnreadCount(ctx context.Context, recipientID, category string) (int, error) {
	count, err := s.messageRepo.GetUnreadCount(ctx, recipientID, category)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func recordToMessage(record *secondary.MessageRecord) *primary.Message {
	return &primary.Message{
		ID:        record.ID,
		IntakeID:  record.IntakeID,
		Sender:    record.Sender,
		Recipient: record.Recipient,
		Body:      record.Body,
		Category:  record.Category,
		Read:      record.Read,
		Timestamp: record.Timestamp,
	}
}

// Ensure MessageServiceImpl implements the interface.
var _ primary.MessageService = (*MessageServiceImpl)(nil)
