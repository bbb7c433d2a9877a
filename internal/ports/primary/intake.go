package primary

import "context"

// IntakeService defines the primary port for the intake and assignment
// workflow.
type IntakeService interface {
	// CreateIntake binds a customer to a vehicle with a service reason.
	// The intake starts in "Ingreso" and gets one service log entry.
	CreateIntake(ctx context.Context, req CreateIntakeRequest) (*Intake, error)

	// GetIntake retrieves an intake by ID.
	GetIntake(ctx context.Context, intakeID string) (*Intake, error)

	// ListIntakes lists intakes with optional filters.
	ListIntakes(ctx context.Context, filters IntakeFilters) ([]*Intake, error)

	// AssignTechnician assigns an active technician to the intake and
	// appends an assignment log entry.
	AssignTechnician(ctx context.Context, intakeID, technicianID string) error

	// SetStatus advances the intake through the canonical status order.
	// Backward moves need force. "Entregado" stamps the completion time.
	SetStatus(ctx context.Context, req SetStatusRequest) error
}

// Intake is a service intake as seen by the role views.
type Intake struct {
	ID              string
	CustomerID      string
	CustomerName    string
	VehicleID       string
	VehicleLabel    string // "Make Model (Plate)"
	Status          string
	CreatedAt       string
	CompletedAt     string // empty until delivered
	AssignedTo      string // empty until a technician is assigned
	AssignedToName  string
	Reason          string
	DeadlineDays    int
	DeadlineHours   int
	DeadlineMinutes int
	DeadlineStart   string // empty when no deadline was ever set
	DeadlineActive  bool
}

// CreateIntakeRequest contains parameters for creating an intake.
type CreateIntakeRequest struct {
	CustomerID string
	VehicleID  string
	Reason     string
}

// SetStatusRequest contains parameters for a status transition.
type SetStatusRequest struct {
	IntakeID string
	Status   string
	Force    bool // allow a backward move as an explicit correction
}

// IntakeFilters contains filter options for querying intakes.
type IntakeFilters struct {
	Status         string
	AssignedTo     string
	UnassignedOnly bool
}
