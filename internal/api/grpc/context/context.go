package context

import (
	"context"

	"github.com/dtroode/panorama-auth/internal/model"
)

type claimsKey struct{}

// Manager stores verified access-token claims in the request context.
// It implements model.ContextManager.
//
// Claims are kept under an unexported key rather than in incoming metadata,
// so a client cannot forge them by sending headers.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a copy of ctx carrying claims.
func (m *Manager) SetIdentityToContext(ctx context.Context, claims model.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetIdentityFromContext returns the claims set by SetIdentityToContext.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.AccessClaims)
	return claims, ok
}
