package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/panorama-auth/internal/authz"
	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/model"
)

// Authorize enforces per-method role policies on authenticated calls.
// Methods without a policy only need authentication.
type Authorize struct {
	policies       map[string]authz.Policy
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates an Authorize middleware for the full-method to policy table.
func NewAuthorize(policies map[string]authz.Policy, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{policies: policies, contextManager: contextManager, logger: logger}
}

// HandleGRPC rejects calls whose identity does not satisfy the method's policy.
func (a *Authorize) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	policy, ok := a.policies[info.FullMethod]
	if !ok {
		return handler(ctx, req)
	}

	claims, ok := a.contextManager.GetIdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}

	if authz.Check(claims.Identity, policy) == authz.Deny {
		a.logger.Warn("Authorize middleware: access denied",
			"method", info.FullMethod,
			"user_id", claims.UserID,
			"role", claims.Role,
			"policy", policy.Name)
		return nil, status.Error(codes.PermissionDenied, deniedMessage(policy))
	}

	return handler(ctx, req)
}

func deniedMessage(policy authz.Policy) string {
	switch policy.Name {
	case authz.RequireSuperAdmin.Name:
		return "super admin access required"
	case authz.RequireAdmin.Name:
		return "admin access required"
	default:
		return "access denied"
	}
}
