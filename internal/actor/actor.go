// Package actor resolves "who is making this change" for audit attribution
// and authorization, independent of how the call arrived. The acting identity
// is carried in the request context, never in process-global state, so
// concurrent operations cannot observe each other's actor.
package actor

import (
	"context"

	"github.com/google/uuid"
	"github.com/it-inventory/backend/internal/models"
)

type Actor struct {
	UserID   uuid.UUID
	Username string
	FullName string
	Email    string
	Role     string
}

// Elevated reports whether the actor holds super-admin privilege.
func (a Actor) Elevated() bool {
	return a.Role == models.RoleSuperAdmin
}

// DisplayName prefers the full name, falling back to the username.
func (a Actor) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the acting identity.
func NewContext(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the acting identity, or ok=false for anonymous or
// system-initiated work.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
