package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/model"
)

// Authenticator resolves bearer access tokens into claims.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.AccessClaims, error)
}

// Authenticate validates bearer tokens and injects the caller's claims into context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the bearer token from the authorization metadata, verifies
// it and returns a context carrying the claims. It is meant for the
// go-grpc-middleware auth interceptor.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	tokenString, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil || tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, "access token required")
	}

	claims, err := m.authenticator.Authenticate(ctx, tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: rejected access token",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid or expired access token")
	}

	return m.contextManager.SetIdentityToContext(ctx, claims), nil
}
