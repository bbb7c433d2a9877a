package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// VehicleServiceImpl implements the VehicleService interface.
type VehicleServiceImpl struct {
	vehicleRepo secondary.VehicleRepository
}

// NewVehicleService creates a new VehicleService with injected dependencies.
func NewVehicleService(vehicleRepo secondary.VehicleRepository) *VehicleServiceImpl {
	return &VehicleServiceImpl{
		vehicleRepo: vehicleRepo,
	}
}

// CreateVehicle registers a new vehicle. A plate already held by an active
// vehicle is a conflict; a retired vehicle's plate is free for reuse.
func (s *VehicleServiceImpl) CreateVehicle(ctx context.Context, req primary.CreateVehicleRequest) (*primary.Vehicle, error) {
	if strings.TrimSpace(req.Make) == "" {
		return nil, fmt.Errorf("%w: vehicle make must not be empty", primary.ErrValidation)
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("%w: vehicle model must not be empty", primary.ErrValidation)
	}
	if strings.TrimSpace(req.Plate) == "" {
		return nil, fmt.Errorf("%w: vehicle plate must not be empty", primary.ErrValidation)
	}

	taken, err := s.vehicleRepo.ActivePlateExists(ctx, req.Plate, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check plate: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: plate %s belongs to an active vehicle", primary.ErrConflict, req.Plate)
	}

	nextID, err := s.vehicleRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate vehicle ID: %w", err)
	}

	record := &secondary.VehicleRecord{
		ID:    nextID,
		Make:  req.Make,
		Model: req.Model,
		Plate: req.Plate,
		Year:  req.Year,
		Color: req.Color,
	}
	if err := s.vehicleRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	created, err := s.vehicleRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created vehicle: %w", err)
	}
	return recordToVehicle(created), nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleServiceImpl) GetVehicle(ctx context.Context, vehicleID string) (*primary.Vehicle, error) {
	record, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: vehicle %s", primary.ErrNotFound, vehicleID)
	}
	return recordToVehicle(record), nil
}

// UpdateVehicle updates a vehicle's details. Empty request fields keep
// their current value.
func (s *VehicleServiceImpl) UpdateVehicle(ctx context.Context, req primary.UpdateVehicleRequest) error {
	record, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return fmt.Errorf("failed to get vehicle: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: vehicle %s", primary.ErrNotFound, req.VehicleID)
	}

	if req.Plate != "" && req.Plate != record.Plate {
		taken, err := s.vehicleRepo.ActivePlateExists(ctx, req.Plate, record.ID)
		if err != nil {
			return fmt.Errorf("failed to check plate: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: plate %s belongs to an active vehicle", primary.ErrConflict, req.Plate)
		}
		record.Plate = req.Plate
	}
	if req.Make != "" {
		record.Make = req.Make
	}
	if req.Model != "" {
		record.Model = req.Model
	}
	if req.Year != "" {
		record.Year = req.Year
	}
	if req.Color != "" {
		record.Color = req.Color
	}

	if err := s.vehicleRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// ListVehicles lists vehicles, active ones only unless includeInactive.
func (s *VehicleServiceImpl) ListVehicles(ctx context.Context, includeInactive bool) ([]*primary.Vehicle, error) {
	records, err := s.vehicleRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]*primary.Vehicle, len(records))
	for i, r := range records {
		vehicles[i] = recordToVehicle(r)
	}
	return vehicles, nil
}

// SearchVehicles matches active vehicles by make, model or plate fragment.
func (s *VehicleServiceImpl) SearchVehicles(ctx context.Context, query string) ([]*primary.Vehicle, error) {
	records, err := s.vehicleRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search vehicles: %w", err)
	}

	matches := make([]*primary.Vehicle, len(records))
	for i, r := range records {
		matches[i] = recordToVehicle(r)
	}
	return matches, nil
}

// DeleteVehicle soft-deletes a vehicle, releasing its plate.
func (s *VehicleServiceImpl) DeleteVehicle(ctx context.Context, vehicleID string) error {
	record, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to get vehicle: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: vehicle %s", primary.ErrNotFound, vehicleID)
	}

	if err := s.vehicleRepo.Deactivate(ctx, vehicleID); err != nil {
		return fmt.Errorf("failed to deactivate vehicle: %w", err)
	}
	return nil
}

func recordToVehicle(record *secondary.VehicleRecord) *primary.Vehicle {
	return &primary.Vehicle{
		ID:        record.ID,
		Make:      record.Make,
		Model:     record.Model,
		Plate:     record.Plate,
		Year:      record.Year,
		Color:     record.Color,
		Active:    record.Active,
		CreatedAt: record.CreatedAt,
	}
}

// Ensure VehicleServiceImpl implements the interface.
var _ primary.VehicleService = (*VehicleServiceImpl)(nil)
