// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the acting user's ID.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// RoleKey is the context key for the acting user's role.
type RoleKey struct{}

// WithActor returns a context carrying the logged-in user's ID and role.
// Every workflow operation reads the actor from here when stamping service
// log entries and payment metadata.
func WithActor(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, ActorKey{}, userID)
	return context.WithValue(ctx, RoleKey{}, role)
}

// ActorFromContext returns the acting user ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v := ctx.Value(ActorKey{}); v != nil {
		return v.(string)
	}
	return ""
}

// RoleFromContext returns the acting user's role from context, or empty string if not set.
func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(RoleKey{}); v != nil {
		return v.(string)
	}
	return ""
}
