package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/taller/internal/core/intake"
	"github.com/example/taller/internal/ctxutil"
	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// IntakeServiceImpl implements the IntakeService interface.
type IntakeServiceImpl struct {
	intakeRepo   secondary.IntakeRepository
	customerRepo secondary.CustomerRepository
	vehicleRepo  secondary.VehicleRepository
	userRepo     secondary.UserRepository
	logRepo      secondary.ServiceLogRepository
}

// NewIntakeService creates a new IntakeService with injected dependencies.
func NewIntakeService(
	intakeRepo secondary.IntakeRepository,
	customerRepo secondary.CustomerRepository,
	vehicleRepo secondary.VehicleRepository,
	userRepo secondary.UserRepository,
	logRepo secondary.ServiceLogRepository,
) *IntakeServiceImpl {
	return &IntakeServiceImpl{
		intakeRepo:   intakeRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		logRepo:      logRepo,
	}
}

// CreateIntake binds a customer to a vehicle with a service reason. The
// intake starts in "Ingreso" and the first service log entry is written.
func (s *IntakeServiceImpl) CreateIntake(ctx context.Context, req primary.CreateIntakeRequest) (*primary.Intake, error) {
	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", primary.ErrNotFound, req.CustomerID)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: vehicle %s", primary.ErrNotFound, req.VehicleID)
	}

	guard := intake.CanCreateIntake(intake.CreateIntakeContext{
		CustomerID:     req.CustomerID,
		CustomerExists: true,
		CustomerActive: customer.Active,
		VehicleID:      req.VehicleID,
		VehicleExists:  true,
		VehicleActive:  vehicle.Active,
		Reason:         req.Reason,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	nextID, err := s.intakeRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate intake ID: %w", err)
	}

	record := &secondary.IntakeRecord{
		ID:         nextID,
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Status:     string(intake.InitialStatus()),
		Reason:     req.Reason,
	}
	if err := s.intakeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create intake: %w", err)
	}

	description := fmt.Sprintf("Vehículo ingresado al taller. Motivo: %s", req.Reason)
	if err := s.appendLog(ctx, nextID, "Ingreso", description); err != nil {
		return nil, err
	}

	created, err := s.intakeRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created intake: %w", err)
	}
	return recordToIntake(created), nil
}

// GetIntake retrieves an intake by ID.
func (s *IntakeServiceImpl) GetIntake(ctx context.Context, intakeID string) (*primary.Intake, error) {
	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}
	return recordToIntake(record), nil
}

// ListIntakes lists intakes with optional filters.
func (s *IntakeServiceImpl) ListIntakes(ctx context.Context, filters primary.IntakeFilters) ([]*primary.Intake, error) {
	records, err := s.intakeRepo.List(ctx, secondary.IntakeFilters{
		Status:         filters.Status,
		AssignedTo:     filters.AssignedTo,
		UnassignedOnly: filters.UnassignedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list intakes: %w", err)
	}

	intakes := make([]*primary.Intake, len(records))
	for i, r := range records {
		intakes[i] = recordToIntake(r)
	}
	return intakes, nil
}

// AssignTechnician assigns an active technician to the intake.
func (s *IntakeServiceImpl) AssignTechnician(ctx context.Context, intakeID, technicianID string) error {
	record, err := s.intakeRepo.GetByID(ctx, intakeID)
	if err != nil {
		return fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: intake %s", primary.ErrNotFound, intakeID)
	}

	technician, err := s.userRepo.GetByID(ctx, technicianID)
	if err != nil {
		return fmt.Errorf("failed to get technician: %w", err)
	}
	if technician == nil {
		return fmt.Errorf("%w: user %s", primary.ErrNotFound, technicianID)
	}

	guard := intake.CanAssignTechnician(intake.AssignTechnicianContext{
		TechnicianID:     technicianID,
		TechnicianExists: true,
		TechnicianActive: technician.Active,
		TechnicianRole:   technician.Role,
	})
	if !guard.Allowed {
		return fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	if err := s.intakeRepo.AssignTechnician(ctx, intakeID, technicianID); err != nil {
		return fmt.Errorf("failed to assign technician: %w", err)
	}

	description := fmt.Sprintf("Servicio asignado a %s (%s)", technician.DisplayName, technician.ID)
	return s.appendLog(ctx, intakeID, "Asignación", description)
}

// SetStatus advances the intake through the canonical status order.
// Backward moves need force. "Entregado" stamps the completion time.
func (s *IntakeServiceImpl) SetStatus(ctx context.Context, req primary.SetStatusRequest) error {
	record, err := s.intakeRepo.GetByID(ctx, req.IntakeID)
	if err != nil {
		return fmt.Errorf("failed to get intake: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: intake %s", primary.ErrNotFound, req.IntakeID)
	}

	next, _ := intake.ParseStatus(req.Status)
	if next == "" {
		next = intake.Status(req.Status) // let the guard name the rejection
	}
	guard := intake.CanChangeStatus(intake.StatusChangeContext{
		IntakeID: req.IntakeID,
		Current:  intake.Status(record.Status),
		Next:     next,
		Force:    req.Force,
	})
	if !guard.Allowed {
		return fmt.Errorf("%w: %s", primary.ErrValidation, guard.Reason)
	}

	result := intake.ApplyStatusTransition(next, time.Now().UTC())
	if err := s.intakeRepo.UpdateStatus(ctx, req.IntakeID, string(result.NewStatus), result.CompletedAt != nil); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	description := fmt.Sprintf("Estado actualizado a: %s", result.NewStatus)
	return s.appendLog(ctx, req.IntakeID, "Cambio de estado", description)
}

// appendLog writes one audit entry stamped with the acting user.
func (s *IntakeServiceImpl) appendLog(ctx context.Context, intakeID, category, description string) error {
	return appendServiceLog(ctx, s.logRepo, intakeID, category, description)
}

// appendServiceLog is the shared audit-trail writer used by every workflow
// service. The actor comes from the context set at login.
func appendServiceLog(ctx context.Context, logRepo secondary.ServiceLogRepository, intakeID, category, description string) error {
	nextID, err := logRepo.GetNextID(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate log ID: %w", err)
	}

	entry := &secondary.ServiceLogRecord{
		ID:          nextID,
		IntakeID:    intakeID,
		Category:    category,
		Description: description,
		Actor:       ctxutil.ActorFromContext(ctx),
	}
	if err := logRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

func recordToIntake(record *secondary.IntakeRecord) *primary.Intake {
	return &primary.Intake{
		ID:              record.ID,
		CustomerID:      record.CustomerID,
		CustomerName:    record.CustomerName,
		VehicleID:       record.VehicleID,
		VehicleLabel:    fmt.Sprintf("%s %s (%s)", record.VehicleMake, record.VehicleModel, record.VehiclePlate),
		Status:          record.Status,
		CreatedAt:       record.CreatedAt,
		CompletedAt:     record.CompletedAt,
		AssignedTo:      record.AssignedTo,
		AssignedToName:  record.AssignedToName,
		Reason:          record.Reason,
		DeadlineDays:    record.DeadlineDays,
		DeadlineHours:   record.DeadlineHours,
		DeadlineMinutes: record.DeadlineMinutes,
		DeadlineStart:   record.DeadlineStart,
		DeadlineActive:  record.DeadlineActive,
	}
}

// Ensure IntakeServiceImpl implements the interface.
var _ primary.IntakeService = (*IntakeServiceImpl)(nil)
