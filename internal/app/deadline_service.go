package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/taller/internal/core/deadline"
	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// DeadlineServiceImpl implements the DeadlineService interface.
type DeadlineServiceImpl struct {
	intakeRepo secondary.IntakeRepository
	logRepo    secondary.ServiceLogRepository
	tracker    *deadlineTracker
}

// NewDeadlineService creates a new DeadlineService with injected dependencies.
func NewDeadlineService(intakeRepo secondary.IntakeRepository, logRepo secondary.ServiceLogRepository) *DeadlineServiceImpl {
	return &DeadlineServiceImpl{
		intakeRepo: intakeRepo,
		logRepo:    logRepo,
		tracker:    newDeadlineTracker(),
	}
}

// SetDeadline attaches an elapsed-time budget to an intake and starts the
// clock. The budget must be greater than zero.
func (s *DeadlineServiceImpl) SetDeadline(ctx context.Context, req primary.SetDeadlineRequest) error {
	record, err := s.intakeRepo.GetByID(ctx, req.IntakeID)
	if err != nil {
		return fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: intake %s", primary.ErrNotFound, req.IntakeID)
	}

	budget := deadline.Budget{Days: req.Days, Hours: req.Hours, Minutes: req.Minutes}
	guard := deadline.CanSetDeadline(budget)
	if !guard.Allowed {
		return fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	start := time.Now().UTC()
	err = s.intakeRepo.SetDeadline(ctx, req.IntakeID, req.Days, req.Hours, req.Minutes, start.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to persist deadline: %w", err)
	}

	s.tracker.set(req.IntakeID, start, budget.Duration())

	description := fmt.Sprintf("Plazo asignado: %s", deadline.FormatDuration(budget.Duration()))
	return appendServiceLog(ctx, s.logRepo, req.IntakeID, "Plazo asignado", description)
}

// FinishDeadline closes an active deadline, buckets the final percentage
// into a category, and records the outcome in the service log. An intake
// without an active deadline fails validation and writes nothing.
func (s *DeadlineServiceImpl) FinishDeadline(ctx context.Context, intakeID string) (*primary.DeadlineOutcome, error) {
	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}

	guard := deadline.CanFinishDeadline(intakeID, record.DeadlineActive)
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	start, err := time.Parse(time.RFC3339, record.DeadlineStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deadline start: %w", err)
	}
	budget := deadline.Budget{
		Days:    record.DeadlineDays,
		Hours:   record.DeadlineHours,
		Minutes: record.DeadlineMinutes,
	}

	result := deadline.Finish(start, budget.Duration(), time.Now().UTC())

	if err := s.intakeRepo.ClearDeadlineActive(ctx, intakeID); err != nil {
		return nil, fmt.Errorf("failed to clear deadline: %w", err)
	}
	s.tracker.remove(intakeID)

	category := fmt.Sprintf("Plazo Finalizado - %s", result.Category)
	if err := appendServiceLog(ctx, s.logRepo, intakeID, category, result.Summary()); err != nil {
		return nil, err
	}

	return &primary.DeadlineOutcome{
		IntakeID: intakeID,
		Percent:  result.Percent,
		Category: string(result.Category),
		Overrun:  result.Overrun,
		Summary:  result.Summary(),
	}, nil
}

// Readings returns the current countdown state for every tracked intake.
func (s *DeadlineServiceImpl) Readings(now time.Time) []primary.DeadlineReading {
	return s.tracker.snapshot(now)
}

// Reload reconciles the in-memory tracker from the persisted deadline
// fields. Called at startup.
func (s *DeadlineServiceImpl) Reload(ctx context.Context) error {
	records, err := s.intakeRepo.ListActiveDeadlines(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active deadlines: %w", err)
	}

	s.tracker.reset()
	for _, r := range records {
		start, err := time.Parse(time.RFC3339, r.DeadlineStart)
		if err != nil {
			return fmt.Errorf("failed to parse deadline start for %s: %w", r.ID, err)
		}
		budget := deadline.Budget{Days: r.DeadlineDays, Hours: r.DeadlineHours, Minutes: r.DeadlineMinutes}
		s.tracker.set(r.ID, start, budget.Duration())
	}
	return nil
}

// StartTicker invokes fn with a fresh snapshot every second until the
// returned scheduler is stopped. The tick path is read-only.
func (s *DeadlineServiceImpl) StartTicker(fn func([]primary.DeadlineReading)) *cron.Cron {
	c := cron.New(cron.WithSeconds())
	// Seconds-field schedule: fire every second
	_, _ = c.AddFunc("* * * * * *", func() {
		fn(s.Readings(time.Now()))
	})
	c.Start()
	return c
}

// Ensure DeadlineServiceImpl implements the interface.
var _ primary.DeadlineService = (*DeadlineServiceImpl)(nil)
