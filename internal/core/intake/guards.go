package intake

import (
	"fmt"
	"strings"
)

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

// CreateIntakeContext provides context for intake creation guards.
type CreateIntakeContext struct {
	CustomerID     string
	CustomerExists bool
	CustomerActive bool
	VehicleID      string
	VehicleExists  bool
	VehicleActive  bool
	Reason         string
}

// AssignTechnicianContext provides context for technician assignment guards.
type AssignTechnicianContext struct {
	TechnicianID     string
	TechnicianExists bool
	TechnicianActive bool
	TechnicianRole   string
}

// StatusChangeContext provides context for status transition guards.
type StatusChangeContext struct {
	IntakeID string
	Current  Status
	Next     Status
	Force    bool
}

// CanCreateIntake evaluates whether an intake can be created.
// Rules:
// - Customer must exist and be active
// - Vehicle must exist and be active
// - Reason must be non-empty
func CanCreateIntake(ctx CreateIntakeContext) GuardResult {
	if !ctx.CustomerExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("customer %s not found", ctx.CustomerID),
		}
	}
	if !ctx.CustomerActive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("customer %s is inactive", ctx.CustomerID),
		}
	}
	if !ctx.VehicleExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("vehicle %s not found", ctx.VehicleID),
		}
	}
	if !ctx.VehicleActive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("vehicle %s is inactive", ctx.VehicleID),
		}
	}
	if strings.TrimSpace(ctx.Reason) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "intake reason must not be empty",
		}
	}

	return GuardResult{Allowed: true}
}

// CanAssignTechnician evaluates whether a technician can be assigned.
// Rules:
// - Technician must exist, be active, and hold the Tecnico role
func CanAssignTechnician(ctx AssignTechnicianContext) GuardResult {
	if !ctx.TechnicianExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("technician %s not found", ctx.TechnicianID),
		}
	}
	if !ctx.TechnicianActive {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("technician %s is inactive", ctx.TechnicianID),
		}
	}
	if ctx.TechnicianRole != "Tecnico" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("user %s is not a technician (role: %s)", ctx.TechnicianID, ctx.TechnicianRole),
		}
	}

	return GuardResult{Allowed: true}
}

// CanChangeStatus evaluates whether a status transition is allowed.
// Rules:
// - Next status must belong to the closed enumeration
// - Backward moves in the canonical order are rejected unless forced
//   (the force flag is the explicit correction escape hatch)
func CanChangeStatus(ctx StatusChangeContext) GuardResult {
	if rank(ctx.Next) < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown status %q", string(ctx.Next)),
		}
	}

	if !ctx.Force && rank(ctx.Next) < rank(ctx.Current) {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("cannot move intake %s backward from %s to %s (use --force to override)",
				ctx.IntakeID, ctx.Current, ctx.Next),
		}
	}

	return GuardResult{Allowed: true}
}
