// Package payment contains the pure business logic for the payment ledger:
// status derivation, payment application, and the serialized history log.
// No I/O, only pure functions.
package payment

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status represents the derived payment state of a ledger. The values are
// the stored Spanish names.
type Status string

const (
	StatusPending Status = "Pendiente"
	StatusPartial Status = "Parcial"
	StatusPaid    Status = "Pagado"
)

// DeriveStatus computes the payment status from total and paid amounts.
// Nothing paid is always Pendiente, covering a fresh ledger whose price is
// still zero; otherwise paid at or above total is Pagado and anything in
// between is Parcial.
func DeriveStatus(total, paid float64) Status {
	switch {
	case paid <= 0:
		return StatusPending
	case paid >= total:
		return StatusPaid
	default:
		return StatusPartial
	}
}

// Event is one payment appended to the ledger's ordered history log.
type Event struct {
	Timestamp string  `json:"timestamp"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	ActorID   string  `json:"actor_id"`
	Note      string  `json:"note,omitempty"`
}

// MarshalHistory serializes the ordered event list for storage.
func MarshalHistory(events []Event) (string, error) {
	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment history: %w", err)
	}
	return string(data), nil
}

// UnmarshalHistory deserializes a stored history log. An empty or NULL
// column yields an empty history rather than an error.
func UnmarshalHistory(raw string) ([]Event, error) {
	if raw == "" {
		return nil, nil
	}
	var events []Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, fmt.Errorf("failed to parse payment history: %w", err)
	}
	return events, nil
}

// SumEvents returns the total amount across history events. The ledger
// invariant is paid == SumEvents(history).
func SumEvents(events []Event) float64 {
	var sum float64
	for _, e := range events {
		sum += e.Amount
	}
	return sum
}

// ApplyResult captures the full state change of recording one payment.
// The caller persists NewPaid, NewStatus and the re-marshaled history in a
// single write so the ledger is never half-updated.
type ApplyResult struct {
	NewPaid   float64
	NewStatus Status
	Event     Event
	History   []Event
}

// ApplyPayment appends a payment event and recomputes the derived fields.
// This is a pure function; the caller passes the current time.
func ApplyPayment(total, paid float64, history []Event, amount float64, method, actorID, note string, now time.Time) ApplyResult {
	event := Event{
		Timestamp: now.Format(time.RFC3339),
		Amount:    amount,
		Method:    method,
		ActorID:   actorID,
		Note:      note,
	}

	newPaid := paid + amount
	newHistory := make([]Event, 0, len(history)+1)
	newHistory = append(newHistory, history...)
	newHistory = append(newHistory, event)

	return ApplyResult{
		NewPaid:   newPaid,
		NewStatus: DeriveStatus(total, newPaid),
		Event:     event,
		History:   newHistory,
	}
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RecordPaymentContext provides context for payment recording guards.
type RecordPaymentContext struct {
	IntakeID           string
	LedgerExists       bool
	Amount             float64
	Pending            float64 // total - paid at the time of the call
	ConfirmOverpayment bool
}

// CanSetPrice evaluates whether a total price can be set.
// Rules:
// - Total must not be negative
func CanSetPrice(total float64) GuardResult {
	if total < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "total price must not be negative",
		}
	}
	return GuardResult{Allowed: true}
}

// CanRecordPayment evaluates whether a payment can be recorded.
// Rules:
// - A ledger must exist (the price was set at least once)
// - Amount must be positive
// - An amount above the pending balance needs explicit confirmation;
//   once confirmed the over-payment is accepted, never truncated
func CanRecordPayment(ctx RecordPaymentContext) GuardResult {
	if !ctx.LedgerExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("no payment ledger for intake %s (set a price first)", ctx.IntakeID),
		}
	}
	if ctx.Amount <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "payment amount must be greater than zero",
		}
	}
	if ctx.Amount > ctx.Pending && !ctx.ConfirmOverpayment {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("payment of %.2f exceeds the pending balance of %.2f (confirm the over-payment to proceed)",
				ctx.Amount, ctx.Pending),
		}
	}
	return GuardResult{Allowed: true}
}
