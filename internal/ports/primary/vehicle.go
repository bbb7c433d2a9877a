package primary

import "context"

// VehicleService defines the primary port for vehicle registry operations.
type VehicleService interface {
	// CreateVehicle registers a new vehicle. A plate already held by an
	// active vehicle is a conflict.
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*Vehicle, error)

	// GetVehicle retrieves a vehicle by ID.
	GetVehicle(ctx context.Context, vehicleID string) (*Vehicle, error)

	// UpdateVehicle updates a vehicle's details.
	UpdateVehicle(ctx context.Context, req UpdateVehicleRequest) error

	// ListVehicles lists vehicles, active ones only unless includeInactive.
	ListVehicles(ctx context.Context, includeInactive bool) ([]*Vehicle, error)

	// SearchVehicles matches vehicles by make, model or plate fragment.
	SearchVehicles(ctx context.Context, query string) ([]*Vehicle, error)

	// DeleteVehicle soft-deletes a vehicle, releasing its plate.
	DeleteVehicle(ctx context.Context, vehicleID string) error
}

// Vehicle is a registered vehicle as seen by the role views.
type Vehicle struct {
	ID        string
	Make      string
	Model     string
	Plate     string
	Year      string
	Color     string
	Active    bool
	CreatedAt string
}

// CreateVehicleRequest contains parameters for registering a vehicle.
type CreateVehicleRequest struct {
	Make  string
	Model string
	Plate string
	Year  string // optional
	Color string // optional
}

// UpdateVehicleRequest contains parameters for updating a vehicle.
// Empty fields keep their current value.
type UpdateVehicleRequest struct {
	VehicleID string
	Make      string
	Model     string
	Plate     string
	Year      string
	Color     string
}
