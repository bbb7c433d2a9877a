package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/taller/internal/ports/primary"
)

func newTestAuthService() (*AuthServiceImpl, *mockUserRepo) {
	userRepo := newMockUserRepo()
	service := NewAuthService(userRepo)
	return service, userRepo
}

func registerTestUser(t *testing.T, service *AuthServiceImpl, username, role string) *primary.User {
	t.Helper()
	user, err := service.RegisterUser(context.Background(), primary.RegisterUserRequest{
		Username:    username,
		Password:    "secret123",
		DisplayName: "Test " + username,
		Role:        role,
	})
	if err != nil {
		t.Fatalf("failed to register user %s: %v", username, err)
	}
	return user
}

// ============================================================================
// RegisterUser Tests
// ============================================================================

func TestRegisterUser_Success(t *testing.T) {
	service, _ := newTestAuthService()

	user, err := service.RegisterUser(context.Background(), primary.RegisterUserRequest{
		Username:    "mlopez",
		Password:    "secret123",
		DisplayName: "María López",
		Role:        primary.RoleFrontDesk,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "USR-001" {
		t.Errorf("expected ID USR-001, got %s", user.ID)
	}
	if user.Role != primary.RoleFrontDesk {
		t.Errorf("expected role %s, got %s", primary.RoleFrontDesk, user.Role)
	}
	if !user.Active {
		t.Error("expected new user to be active")
	}
}

func TestRegisterUser_EmptyUsername(t *testing.T) {
	service, _ := newTestAuthService()

	_, err := service.RegisterUser(context.Background(), primary.RegisterUserRequest{
		Username:    "  ",
		Password:    "secret123",
		DisplayName: "Nobody",
		Role:        primary.RoleManager,
	})

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterUser_UnknownRole(t *testing.T) {
	service, _ := newTestAuthService()

	_, err := service.RegisterUser(context.Background(), primary.RegisterUserRequest{
		Username:    "mlopez",
		Password:    "secret123",
		DisplayName: "María López",
		Role:        "Supervisor",
	})

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterUser_TakenUsername(t *testing.T) {
	service, _ := newTestAuthService()
	registerTestUser(t, service, "mlopez", primary.RoleFrontDesk)

	_, err := service.RegisterUser(context.Background(), primary.RegisterUserRequest{
		Username:    "mlopez",
		Password:    "other456",
		DisplayName: "Otra Persona",
		Role:        primary.RoleTechnician,
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_Success(t *testing.T) {
	service, _ := newTestAuthService()
	registerTestUser(t, service, "gperez", primary.RoleManager)

	identity, err := service.Login(context.Background(), "gperez", "secret123")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if identity.UserID != "USR-001" {
		t.Errorf("expected user ID USR-001, got %s", identity.UserID)
	}
	if identity.Role != primary.RoleManager {
		t.Errorf("expected role %s, got %s", primary.RoleManager, identity.Role)
	}
	if identity.DisplayName != "Test gperez" {
		t.Errorf("expected display name 'Test gperez', got %s", identity.DisplayName)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _ := newTestAuthService()
	registerTestUser(t, service, "gperez", primary.RoleManager)

	_, err := service.Login(context.Background(), "gperez", "wrongpass")

	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	service, _ := newTestAuthService()
	registerTestUser(t, service, "gperez", primary.RoleManager)

	_, wrongPass := service.Login(context.Background(), "gperez", "wrongpass")
	_, noUser := service.Login(context.Background(), "nobody", "secret123")

	// Both failures must be indistinguishable to the caller.
	if wrongPass == nil || noUser == nil {
		t.Fatal("expected both logins to fail")
	}
	if wrongPass.Error() != noUser.Error() {
		t.Errorf("expected identical errors, got %q and %q", wrongPass, noUser)
	}
}

func TestLogin_DeactivatedUser(t *testing.T) {
	service, _ := newTestAuthService()
	user := registerTestUser(t, service, "gperez", primary.RoleManager)

	if err := service.DeactivateUser(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	_, err := service.Login(context.Background(), "gperez", "secret123")
	if !errors.Is(err, primary.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// ============================================================================
// GetUser / ListUsers / DeactivateUser Tests
// ============================================================================

func TestGetUser_NotFound(t *testing.T) {
	service, _ := newTestAuthService()

	_, err := service.GetUser(context.Background(), "USR-999")

	if !errors.Is(err, primary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsers_FilterByRole(t *testing.T) {
	service, _ := newTestAuthService()
	registerTestUser(t, service, "gperez", primary.RoleManager)
	registerTestUser(t, service, "rmendez", primary.RoleTechnician)
	registerTestUser(t, service, "jsoto", primary.RoleTechnician)

	techs, err := service.ListUsers(context.Background(), primary.RoleTechnician, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(techs) != 2 {
		t.Errorf("expected 2 technicians, got %d", len(techs))
	}
}

func TestDeactivateUser_NotFound(t *testing.T) {
	service, _ := newTestAuthService()

	err := service.DeactivateUser(context.Background(), "USR-999")

	if !errors.Is(err, primary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
