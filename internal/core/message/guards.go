// Package message contains the pure business logic for the task/report
// channel between the manager and technicians.
package message

import (
	"fmt"
	"strings"
)

// Category distinguishes manager tasks from technician reports. The values
// are the stored Spanish names.
type Category string

const (
	CategoryTask   Category = "Tarea"
	CategoryReport Category = "Reporte"
)

// ParseCategory validates a raw category string.
func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategoryTask, CategoryReport:
		return Category(raw), true
	}
	return "", false
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

// SendTaskContext provides context for task message guards.
type SendTaskContext struct {
	IntakeID             string
	IntakeExists         bool
	AssignedTechnicianID string // empty when the intake has no technician
	Body                 string
}

// SendReportContext provides context for report message guards.
type SendReportContext struct {
	IntakeID     string
	IntakeExists bool
	ManagerID    string // empty when no active manager account exists
	Body         string
}

// CanSendTask evaluates whether a manager task can be sent.
// Rules:
// - Intake must exist
// - The intake must already have an assigned technician (the recipient)
// - Body must be non-empty
func CanSendTask(ctx SendTaskContext) GuardResult {
	if !ctx.IntakeExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("intake %s not found", ctx.IntakeID),
		}
	}
	if ctx.AssignedTechnicianID == "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("intake %s has no assigned technician to receive the task", ctx.IntakeID),
		}
	}
	if strings.TrimSpace(ctx.Body) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "message body must not be empty",
		}
	}
	return GuardResult{Allowed: true}
}

// CanSendReport evaluates whether a technician report can be sent.
// Rules:
// - Intake must exist
// - An active manager account must exist (the recipient)
// - Body must be non-empty
func CanSendReport(ctx SendReportContext) GuardResult {
	if !ctx.IntakeExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("intake %s not found", ctx.IntakeID),
		}
	}
	if ctx.ManagerID == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "no active manager account to receive the report",
		}
	}
	if strings.TrimSpace(ctx.Body) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "message body must not be empty",
		}
	}
	return GuardResult{Allowed: true}
}
