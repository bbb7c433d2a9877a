// Package primary defines the primary ports (driving interfaces) for the
// application: the service contracts the role views call into.
package primary

import "context"

// AuthService defines the primary port for the authentication gate and
// user administration.
type AuthService interface {
	// Login validates credentials against the active user table and
	// returns the identity held for the rest of the session.
	Login(ctx context.Context, username, password string) (*Identity, error)

	// RegisterUser creates a new staff account with a hashed password.
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// ListUsers lists users, optionally filtered by role.
	ListUsers(ctx context.Context, role string, activeOnly bool) ([]*User, error)

	// DeactivateUser soft-deletes a user account.
	DeactivateUser(ctx context.Context, userID string) error
}

// Identity is the authenticated outcome of a login, held in memory (and in
// the session file for the CLI) for the life of the window.
type Identity struct {
	UserID      string
	Role        string
	DisplayName string
}

// User is a staff account as seen by the role views.
type User struct {
	ID          string
	Username    string
	Role        string
	DisplayName string
	Active      bool
	CreatedAt   string
}

// RegisterUserRequest contains parameters for creating a staff account.
type RegisterUserRequest struct {
	Username    string
	Password    string
	DisplayName string
	Role        string // Ejecutivo, Gerente or Tecnico
}

// Role constants for the three account types.
const (
	RoleFrontDesk  = "Ejecutivo"
	RoleManager    = "Gerente"
	RoleTechnician = "Tecnico"
)
