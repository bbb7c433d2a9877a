package cli

import (
	"context"
	"fmt"

	"github.com/example/taller/internal/config"
	"github.com/example/taller/internal/ctxutil"
	"github.com/example/taller/internal/ports/primary"
)

// currentSession loads the persisted login, or nil when nobody is logged in.
func currentSession() (*config.Session, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	return config.LoadSession(dir)
}

// requireSession returns a context carrying the logged-in actor, failing
// when no session exists.
func requireSession() (context.Context, *config.Session, error) {
	session, err := currentSession()
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, fmt.Errorf("not logged in (run 'taller login' first)")
	}
	ctx := ctxutil.WithActor(context.Background(), session.UserID, session.Role)
	return ctx, session, nil
}

// requireRole enforces that the logged-in user holds one of the given roles.
func requireRole(roles ...string) (context.Context, *config.Session, error) {
	ctx, session, err := requireSession()
	if err != nil {
		return nil, nil, err
	}
	for _, r := range roles {
		if session.Role == r {
			return ctx, session, nil
		}
	}
	return nil, nil, fmt.Errorf("this command needs one of the roles %v (you are %s)", roles, session.Role)
}

// roleLabel renders a role name for display.
func roleLabel(role string) string {
	switch role {
	case primary.RoleFrontDesk:
		return "Ejecutivo de servicio"
	case primary.RoleManager:
		return "Gerente"
	case primary.RoleTechnician:
		return "Técnico"
	default:
		return role
	}
}
