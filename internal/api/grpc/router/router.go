package router

import (
	"context"
	"slices"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/panorama-auth/internal/api/grpc/handler"
	"github.com/dtroode/panorama-auth/internal/api/grpc/middleware"
	"github.com/dtroode/panorama-auth/internal/api/grpc/pb"
	"github.com/dtroode/panorama-auth/internal/authz"
	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/model"
)

// SessionService is everything the gRPC surface needs from the session layer.
type SessionService interface {
	handler.SessionService
	handler.AdminService
	middleware.Authenticator
}

// publicMethods are reachable without an access token.
var publicMethods = []string{
	pb.Auth_Register_FullMethodName,
	pb.Auth_Login_FullMethodName,
	pb.Auth_Refresh_FullMethodName,
	pb.Auth_Logout_FullMethodName,
}

// methodPolicies maps privileged methods to the role policy they require.
var methodPolicies = map[string]authz.Policy{
	pb.Admin_GetUser_FullMethodName:            authz.RequireAdmin,
	pb.Admin_RevokeUserSessions_FullMethodName: authz.RequireSuperAdmin,
}

// Router represents a gRPC router for the session API.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	sessionService SessionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return !slices.Contains(publicMethods, c.FullMethod())
}

// Register builds the gRPC server with its interceptor chain and services.
// Interceptors run in order: panic recovery, request logging, bearer
// authentication for non-public methods, then role authorization.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(methodPolicies, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(middleware.RecoveryOption(r.logger)),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
			authorize.HandleGRPC,
		),
	)

	s := grpc.NewServer(opts...)
	r.registerAuthRoutes(s)
	r.registerAdminRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.sessionService, r.contextManager, r.logger)
	pb.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerAdminRoutes(server *grpc.Server) {
	adminHandler := handler.NewAdmin(r.sessionService, r.contextManager, r.logger)
	pb.RegisterAdminServer(server, adminHandler)
}
