package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/taller/internal/ports/primary"
)

func newTestVehicleService() (*VehicleServiceImpl, *mockVehicleRepo) {
	vehicleRepo := newMockVehicleRepo()
	service := NewVehicleService(vehicleRepo)
	return service, vehicleRepo
}

func createTestVehicle(t *testing.T, service *VehicleServiceImpl, plate string) *primary.Vehicle {
	t.Helper()
	vehicle, err := service.CreateVehicle(context.Background(), primary.CreateVehicleRequest{
		Make:  "Toyota",
		Model: "Corolla",
		Plate: plate,
		Year:  "2020",
	})
	if err != nil {
		t.Fatalf("failed to create vehicle %s: %v", plate, err)
	}
	return vehicle
}

// ============================================================================
// CreateVehicle Tests
// ============================================================================

func TestCreateVehicle_Success(t *testing.T) {
	service, _ := newTestVehicleService()

	vehicle, err := service.CreateVehicle(context.Background(), primary.CreateVehicleRequest{
		Make:  "Nissan",
		Model: "Versa",
		Plate: "XYZ-789",
		Color: "Rojo",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if vehicle.ID != "VEH-001" {
		t.Errorf("expected ID VEH-001, got %s", vehicle.ID)
	}
	if !vehicle.Active {
		t.Error("expected new vehicle to be active")
	}
}

func TestCreateVehicle_MissingPlate(t *testing.T) {
	service, _ := newTestVehicleService()

	_, err := service.CreateVehicle(context.Background(), primary.CreateVehicleRequest{
		Make:  "Nissan",
		Model: "Versa",
	})

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreateVehicle_DuplicateActivePlate(t *testing.T) {
	service, _ := newTestVehicleService()
	createTestVehicle(t, service, "ABC-123")

	_, err := service.CreateVehicle(context.Background(), primary.CreateVehicleRequest{
		Make:  "Honda",
		Model: "Civic",
		Plate: "ABC-123",
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCreateVehicle_PlateFreedByDeletion(t *testing.T) {
	service, _ := newTestVehicleService()
	first := createTestVehicle(t, service, "ABC-123")

	if err := service.DeleteVehicle(context.Background(), first.ID); err != nil {
		t.Fatalf("failed to delete vehicle: %v", err)
	}

	if _, err := service.CreateVehicle(context.Background(), primary.CreateVehicleRequest{
		Make:  "Honda",
		Model: "Civic",
		Plate: "ABC-123",
	}); err != nil {
		t.Errorf("expected the plate to be reusable, got %v", err)
	}
}

// ============================================================================
// UpdateVehicle Tests
// ============================================================================

func TestUpdateVehicle_SamePlateNoConflict(t *testing.T) {
	service, _ := newTestVehicleService()
	created := createTestVehicle(t, service, "ABC-123")

	err := service.UpdateVehicle(context.Background(), primary.UpdateVehicleRequest{
		VehicleID: created.ID,
		Plate:     "ABC-123",
		Color:     "Azul",
	})
	if err != nil {
		t.Fatalf("expected no conflict against the vehicle's own plate, got %v", err)
	}

	updated, err := service.GetVehicle(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("failed to fetch vehicle: %v", err)
	}
	if updated.Color != "Azul" {
		t.Errorf("expected color Azul, got %s", updated.Color)
	}
}

func TestUpdateVehicle_PlateTakenByOther(t *testing.T) {
	service, _ := newTestVehicleService()
	createTestVehicle(t, service, "ABC-123")
	second := createTestVehicle(t, service, "XYZ-789")

	err := service.UpdateVehicle(context.Background(), primary.UpdateVehicleRequest{
		VehicleID: second.ID,
		Plate:     "ABC-123",
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateVehicle_NotFound(t *testing.T) {
	service, _ := newTestVehicleService()

	err := service.UpdateVehicle(context.Background(), primary.UpdateVehicleRequest{
		VehicleID: "VEH-999",
		Color:     "Azul",
	})

	if !errors.Is(err, primary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================================
// Search / Delete Tests
// ============================================================================

func TestSearchVehicles_ByMakeModelOrPlate(t *testing.T) {
	service, _ := newTestVehicleService()
	createTestVehicle(t, service, "ABC-123")
	if _, err := service.CreateVehicle(context.Background(), primary.CreateVehicleRequest{
		Make: "Nissan", Model: "Versa", Plate: "XYZ-789",
	}); err != nil {
		t.Fatalf("failed to create vehicle: %v", err)
	}

	byMake, err := service.SearchVehicles(context.Background(), "toyota")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(byMake) != 1 || byMake[0].Make != "Toyota" {
		t.Errorf("expected the Toyota, got %d matches", len(byMake))
	}

	byPlate, err := service.SearchVehicles(context.Background(), "xyz")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(byPlate) != 1 || byPlate[0].Plate != "XYZ-789" {
		t.Errorf("expected the Versa, got %d matches", len(byPlate))
	}
}

func TestDeleteVehicle_SoftDelete(t *testing.T) {
	service, vehicleRepo := newTestVehicleService()
	created := createTestVehicle(t, service, "ABC-123")

	if err := service.DeleteVehicle(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(vehicleRepo.vehicles) != 1 {
		t.Fatalf("expected the record to survive, got %d rows", len(vehicleRepo.vehicles))
	}
	if vehicleRepo.vehicles[0].Active {
		t.Error("expected the vehicle to be inactive")
	}
}
