package primary

import "context"

// PaymentService defines the primary port for the payment ledger.
type PaymentService interface {
	// SetPrice sets the total price for an intake, lazily creating the
	// ledger on first use and recomputing the status otherwise.
	SetPrice(ctx context.Context, intakeID string, total float64) (*Ledger, error)

	// RecordPayment appends a payment event and updates the derived
	// fields in one atomic write. An amount above the pending balance
	// requires ConfirmOverpayment.
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Ledger, error)

	// GetLedger retrieves the ledger for an intake.
	GetLedger(ctx context.Context, intakeID string) (*Ledger, error)

	// ListLedgers lists every ledger joined with its intake context,
	// most recent first.
	ListLedgers(ctx context.Context) ([]*Ledger, error)

	// FinancialSummary aggregates billing for the month and year
	// containing the given RFC3339 instant.
	FinancialSummary(ctx context.Context, now string) (*FinancialSummary, error)
}

// Ledger is the single payment record for one intake.
type Ledger struct {
	ID         string
	IntakeID   string
	Total      float64
	Paid       float64
	Pending    float64 // Total - Paid; negative after an over-payment
	Status     string  // Pendiente, Parcial, Pagado
	CreatedAt  string
	LastAmount float64
	LastMethod string
	LastPaidAt string
	LastActor  string
	History    []PaymentEvent
	Notes      string
}

// PaymentEvent is one entry of the ledger's ordered history log.
type PaymentEvent struct {
	Timestamp string
	Amount    float64
	Method    string
	ActorID   string
	Note      string
}

// RecordPaymentRequest contains parameters for recording a payment.
type RecordPaymentRequest struct {
	IntakeID           string
	Amount             float64
	Method             string // Efectivo, Tarjeta, Transferencia, ...
	Note               string // optional
	ConfirmOverpayment bool
}

// FinancialSummary aggregates the billing picture the manager view shows.
type FinancialSummary struct {
	MonthBilled  float64
	MonthPaid    float64
	YearBilled   float64
	YearPaid     float64
	CountPaid    int
	CountPartial int
	CountPending int
}
