package primary

import "context"

// HistoryService defines the primary port for the audit trail and the
// consolidated service-history report.
type HistoryService interface {
	// ListLog returns an intake's service log entries ordered by time.
	ListLog(ctx context.Context, intakeID string) ([]*LogEntry, error)

	// Report builds the full service history for every intake whose
	// customer name or plate matches the query, including each intake's
	// log and payment summary.
	Report(ctx context.Context, query string) ([]*IntakeHistory, error)
}

// LogEntry is one append-only audit record of an action taken on an intake.
type LogEntry struct {
	ID          string
	IntakeID    string
	Category    string // Ingreso, Cambio de estado, Asignación, ...
	Description string
	Timestamp   string
	Actor       string
	ActorName   string
}

// IntakeHistory is one intake's consolidated history: the intake itself,
// its audit trail, and its ledger when a price was set.
type IntakeHistory struct {
	Intake  *Intake
	Entries []*LogEntry
	Ledger  *Ledger // nil when no price was ever set
}
