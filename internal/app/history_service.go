package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	intakeRepo secondary.IntakeRepository
	logRepo    secondary.ServiceLogRepository
	ledgerRepo secondary.LedgerRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(
	intakeRepo secondary.IntakeRepository,
	logRepo secondary.ServiceLogRepository,
	ledgerRepo secondary.LedgerRepository,
) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		intakeRepo: intakeRepo,
		logRepo:    logRepo,
		ledgerRepo: ledgerRepo,
	}
}

// ListLog returns an intake's service log entries ordered by time.
func (s *HistoryServiceImpl) ListLog(ctx context.Context, intakeID string) ([]*primary.LogEntry, error) {
	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}

	records, err := s.logRepo.ListByIntake(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = recordToLogEntry(r)
	}
	return entries, nil
}

// Report builds the full service history for every intake whose customer
// name or plate matches the query.
func (s *HistoryServiceImpl) Report(ctx context.Context, query string) ([]*primary.IntakeHistory, error) {
	records, err := s.intakeRepo.List(ctx, secondary.IntakeFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list intakes: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var report []*primary.IntakeHistory
	for _, r := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.CustomerName), needle) &&
			!strings.Contains(strings.ToLower(r.VehiclePlate), needle) {
			continue
		}

		logRecords, err := s.logRepo.ListByIntake(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list log entries for %s: %w", r.ID, err)
		}
		entries := make([]*primary.LogEntry, len(logRecords))
		for i, lr := range logRecords {
			entries[i] = recordToLogEntry(lr)
		}

		// Ledger is nil when no price was ever set
		var ledger *primary.Ledger
		ledgerRecord, err := s.ledgerRepo.GetByIntake(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get ledger for %s: %w", r.ID, err)
		}
		if ledgerRecord != nil {
			ledger, err = recordToLedger(ledgerRecord)
			if err != nil {
				return nil, err
			}
		}

		report = append(report, &primary.IntakeHistory{
			Intake:  recordToIntake(r),
			Entries: entries,
			Ledger:  ledger,
		})
	}
	return report, nil
}

func recordToLogEntry(record *secondary.ServiceLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:          record.ID,
		IntakeID:    record.IntakeID,
		Category:    record.Category,
		Description: record.Description,
		Timestamp:   record.Timestamp,
		Actor:       record.Actor,
		ActorName:   record.ActorName,
	}
}

// Ensure HistoryServiceImpl implements the interface.
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
