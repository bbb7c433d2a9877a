package primary

import (
	"context"
	"time"
)

// DeadlineService defines the primary port for the deadline tracker.
type DeadlineService interface {
	// SetDeadline attaches an elapsed-time budget to an intake, starts
	// the clock, and appends a service log entry. The budget must be
	// greater than zero.
	SetDeadline(ctx context.Context, req SetDeadlineRequest) error

	// FinishDeadline closes an active deadline, buckets the final
	// percentage into a category, and records the outcome in the
	// service log.
	FinishDeadline(ctx context.Context, intakeID string) (*DeadlineOutcome, error)

	// Readings returns the current countdown state for every tracked
	// intake, computed against the given instant.
	Readings(now time.Time) []DeadlineReading

	// Reload reconciles the in-memory tracker from the persisted
	// deadline fields. Called at startup so a restart never resets
	// elapsed time.
	Reload(ctx context.Context) error
}

// SetDeadlineRequest contains parameters for attaching a deadline budget.
type SetDeadlineRequest struct {
	IntakeID string
	Days     int
	Hours    int
	Minutes  int
}

// DeadlineReading is one intake's derived countdown state. Pure display
// data; producing it never mutates persisted state.
type DeadlineReading struct {
	IntakeID  string
	Percent   float64
	Band      string        // on-time, caution, urgent, overdue
	Remaining time.Duration // negative once overdue
}

// DeadlineOutcome is the recorded result of finishing a deadline.
type DeadlineOutcome struct {
	IntakeID string
	Percent  float64
	Category string // TEMPRANO, NORMAL, URGENTE, ATRASADO
	Overrun  time.Duration
	Summary  string
}
