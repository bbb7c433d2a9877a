// Package intake contains the pure business logic for intake operations.
// This is part of the Functional Core - no I/O, only pure functions.
package intake

import "time"

// Status represents the possible states of an intake. The values are the
// stored Spanish shop-floor names.
type Status string

const (
	StatusReceived  Status = "Ingreso"
	StatusDiagnosis Status = "Diagnóstico"
	StatusBodywork  Status = "Hojalatería"
	StatusPaint     Status = "Pintura"
	StatusAssembly  Status = "Ensamble"
	StatusReady     Status = "Listo"
	StatusDelivered Status = "Entregado"
)

// statusOrder is the canonical progression through the shop.
var statusOrder = []Status{
	StatusReceived,
	StatusDiagnosis,
	StatusBodywork,
	StatusPaint,
	StatusAssembly,
	StatusReady,
	StatusDelivered,
}

// AllStatuses returns the seven statuses in canonical order.
func AllStatuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// ParseStatus validates a raw status string against the closed enumeration.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range statusOrder {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// rank returns the position of a status in the canonical order, or -1 for
// an unknown status.
func rank(s Status) int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// InitialStatus returns the status for a newly created intake.
func InitialStatus() Status {
	return StatusReceived
}

// StatusTransitionResult contains the result of a status transition.
// This is a value object that captures both the new status and any
// side effects (like setting CompletedAt timestamp).
type StatusTransitionResult struct {
	NewStatus   Status
	CompletedAt *time.Time // Set when transitioning to Entregado
}

// ApplyStatusTransition applies a status transition and returns the result.
// This is a pure function that captures the business rule:
// - When the vehicle is delivered, CompletedAt is stamped.
// The caller passes the current time to enable testing.
func ApplyStatusTransition(newStatus Status, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{
		NewStatus: newStatus,
	}

	if newStatus == StatusDelivered {
		result.CompletedAt = &now
	}

	return result
}
