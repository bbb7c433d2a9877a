package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/taller/internal/core/payment"
	"github.com/example/taller/internal/ctxutil"
	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// PaymentServiceImpl implements the PaymentService interface.
type PaymentServiceImpl struct {
	ledgerRepo secondary.LedgerRepository
	intakeRepo secondary.IntakeRepository
}

// NewPaymentService creates a new PaymentService with injected dependencies.
func NewPaymentService(ledgerRepo secondary.LedgerRepository, intakeRepo secondary.IntakeRepository) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		ledgerRepo: ledgerRepo,
		intakeRepo: intakeRepo,
	}
}

// SetPrice sets the total price for an intake, lazily creating the ledger
// on first use and recomputing the status otherwise.
func (s *PaymentServiceImpl) SetPrice(ctx context.Context, intakeID string, total float64) (*primary.Ledger, error) {
	guard := payment.CanSetPrice(total)
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}

	ledger, err := s.ledgerRepo.GetByIntake(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	if ledger == nil {
		nextID, err := s.ledgerRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ledger ID: %w", err)
		}
		fresh := &secondary.LedgerRecord{
			ID:       nextID,
			IntakeID: intakeID,
			Total:    total,
			Paid:     0,
			Status:   string(payment.DeriveStatus(total, 0)),
		}
		if err := s.ledgerRepo.Create(ctx, fresh); err != nil {
			return nil, fmt.Errorf("failed to create ledger: %w", err)
		}
	} else {
		newStatus := payment.DeriveStatus(total, ledger.Paid)
		if err := s.ledgerRepo.UpdatePrice(ctx, ledger.ID, total, string(newStatus)); err != nil {
			return nil, fmt.Errorf("failed to update price: %w", err)
		}
	}

	updated, err := s.ledgerRepo.GetByIntake(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger: %w", err)
	}
	return recordToLedger(updated)
}

// RecordPayment appends a payment event and updates the derived fields in
// one atomic write. An amount above the pending balance requires explicit
// confirmation; once confirmed the over-payment is kept, never truncated.
func (s *PaymentServiceImpl) RecordPayment(ctx context.Context, req primary.RecordPaymentRequest) (*primary.Ledger, error) {
	ledger, err := s.ledgerRepo.GetByIntake(ctx, req.IntakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	if ledger == nil {
		return nil, fmt.Errorf("%w: no payment ledger for intake %s (set a price first)", primary.ErrNotFound, req.IntakeID)
	}

	guard := payment.CanRecordPayment(payment.RecordPaymentContext{
		IntakeID:           req.IntakeID,
		LedgerExists:       true,
		Amount:             req.Amount,
		Pending:            ledger.Total - ledger.Paid,
		ConfirmOverpayment: req.ConfirmOverpayment,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	history, err := payment.UnmarshalHistory(ledger.History)
	if err != nil {
		return nil, err
	}

	actor := ctxutil.ActorFromContext(ctx)
	result := payment.ApplyPayment(ledger.Total, ledger.Paid, history,
		req.Amount, req.Method, actor, req.Note, time.Now().UTC())

	marshaled, err := payment.MarshalHistory(result.History)
	if err != nil {
		return nil, err
	}

	err = s.ledgerRepo.ApplyPayment(ctx, &secondary.PaymentUpdate{
		LedgerID:   ledger.ID,
		Paid:       result.NewPaid,
		Status:     string(result.NewStatus),
		LastAmount: result.Event.Amount,
		LastMethod: result.Event.Method,
		LastPaidAt: result.Event.Timestamp,
		LastActor:  actor,
		History:    marshaled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	updated, err := s.ledgerRepo.GetByIntake(ctx, req.IntakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger: %w", err)
	}
	return recordToLedger(updated)
}

// GetLedger retrieves the ledger for an intake.
func (s *PaymentServiceImpl) GetLedger(ctx context.Context, intakeID string) (*primary.Ledger, error) {
	record, err := s.ledgerRepo.GetByIntake(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: no payment ledger for intake %s", primary.ErrNotFound, intakeID)
	}
	return recordToLedger(record)
}

// ListLedgers lists every ledger, most recent first.
func (s *PaymentServiceImpl) ListLedgers(ctx context.Context) ([]*primary.Ledger, error) {
	records, err := s.ledgerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}

	ledgers := make([]*primary.Ledger, 0, len(records))
	for _, r := range records {
		ledger, err := recordToLedger(r)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}
	return ledgers, nil
}

// FinancialSummary aggregates billing for the month and year containing
// the given RFC3339 instant.
func (s *PaymentServiceImpl) FinancialSummary(ctx context.Context, now string) (*primary.FinancialSummary, error) {
	at, err := time.Parse(time.RFC3339, now)
	if err != nil {
		return nil, fmt.Errorf("%w: bad reference time %q", primary.ErrValidation, now)
	}

	monthStart := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	yearStart := time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, at.Location())

	monthBilled, monthPaid, err := s.ledgerRepo.SummarizeSince(ctx, monthStart.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}
	yearBilled, yearPaid, err := s.ledgerRepo.SummarizeSince(ctx, yearStart.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize year: %w", err)
	}

	counts, err := s.ledgerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ledgers: %w", err)
	}

	return &primary.FinancialSummary{
		MonthBilled:  monthBilled,
		MonthPaid:    monthPaid,
		YearBilled:   yearBilled,
		YearPaid:     yearPaid,
		CountPaid:    counts[string(payment.StatusPaid)],
		CountPartial: counts[string(payment.StatusPartial)],
		CountPending: counts[string(payment.StatusPending)],
	}, nil
}

func recordToLedger(record *secondary.LedgerRecord) (*primary.Ledger, error) {
	history, err := payment.UnmarshalHistory(record.History)
	if err != nil {
		return nil, err
	}

	events := make([]primary.PaymentEvent, len(history))
	for i, e := range history {
		events[i] = primary.PaymentEvent{
			Timestamp: e.Timestamp,
			Amount:    e.Amount,
			Method:    e.Method,
			ActorID:   e.ActorID,
			Note:      e.Note,
		}
	}

	return &primary.Ledger{
		ID:         record.ID,
		IntakeID:   record.IntakeID,
		Total:      record.Total,
		Paid:       record.Paid,
		Pending:    record.Total - record.Paid,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt,
		LastAmount: record.LastAmount,
		LastMethod: record.LastMethod,
		LastPaidAt: record.LastPaidAt,
		LastActor:  record.LastActor,
		History:    events,
		Notes:      record.Notes,
	}, nil
}

// Ensure PaymentServiceImpl implements the interface.
var _ primary.PaymentService = (*PaymentServiceImpl)(nil)
