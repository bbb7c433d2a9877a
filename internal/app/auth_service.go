package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/ports/secondary"
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	userRepo secondary.UserRepository
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(userRepo secondary.UserRepository) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
	}
}

// Login validates credentials against the active user table.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*primary.Identity, error) {
	record, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// A missing user and a wrong password fail the same way; the login
	// error never reveals which part was wrong.
	if record == nil || bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid username or password", primary.ErrValidation)
	}

	return &primary.Identity{
		UserID:      record.ID,
		Role:        record.Role,
		DisplayName: record.DisplayName,
	}, nil
}

// RegisterUser creates a new staff account with a hashed password.
func (s *AuthServiceImpl) RegisterUser(ctx context.Context, req primary.RegisterUserRequest) (*primary.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username must not be empty", primary.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", primary.ErrValidation)
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, fmt.Errorf("%w: display name must not be empty", primary.ErrValidation)
	}
	switch req.Role {
	case primary.RoleFrontDesk, primary.RoleManager, primary.RoleTechnician:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", primary.ErrValidation, req.Role)
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", primary.ErrConflict, req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nextID, err := s.userRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	record := &secondary.UserRecord{
		ID:           nextID,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		DisplayName:  req.DisplayName,
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.userRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created user: %w", err)
	}

	return recordToUser(created), nil
}

// GetUser retrieves a user by ID.
func (s *AuthServiceImpl) GetUser(ctx context.Context, userID string) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: user %s", primary.ErrNotFound, userID)
	}
	return recordToUser(record), nil
}

// ListUsers lists users, optionally filtered by role.
func (s *AuthServiceImpl) ListUsers(ctx context.Context, role string, activeOnly bool) ([]*primary.User, error) {
	records, err := s.userRepo.List(ctx, secondary.UserFilters{Role: role, ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*primary.User, len(records))
	for i, r := range records {
		users[i] = recordToUser(r)
	}
	return users, nil
}

// DeactivateUser soft-deletes a user account.
func (s *AuthServiceImpl) DeactivateUser(ctx context.Context, userID string) error {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if record == nil {
		return fmt.Errorf("%w: user %s", primary.ErrNotFound, userID)
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

func recordToUser(record *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:          record.ID,
		Username:    record.Username,
		Role:        record.Role,
		DisplayName: record.DisplayName,
		Active:      record.Active,
		CreatedAt:   record.CreatedAt,
	}
}

// Ensure AuthServiceImpl implements the interface.
var _ primary.AuthService = (*AuthServiceImpl)(nil)
