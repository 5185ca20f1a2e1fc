package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/panorama-auth/internal/api/grpc/pb"
	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/model"
)

// SessionService defines the session lifecycle operations.
type SessionService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.TokenResponse, error)
	Login(ctx context.Context, params model.LoginParams) (model.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string)
	GetProfile(ctx context.Context, userID uuid.UUID) (model.UserProfile, error)
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	pb.UnimplementedAuthServer
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessionService SessionService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates a user and returns the first token pair.
func (h *Auth) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.TokenResponse, error) {
	h.logger.Debug("Auth handler: processing registration request",
		"username", req.Username)

	resp, err := h.sessionService.Register(ctx, model.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", resp.User.ID)

	return toTokenResponse(resp), nil
}

// Login verifies credentials and returns a new token pair.
func (h *Auth) Login(ctx context.Context, req *pb.LoginRequest) (*pb.TokenResponse, error) {
	h.logger.Debug("Auth handler: processing login request")

	resp, err := h.sessionService.Login(ctx, model.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", resp.User.ID)

	return toTokenResponse(resp), nil
}

// Refresh exchanges a refresh token for a new pair.
func (h *Auth) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.TokenResponse, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	resp, err := h.sessionService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: token refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful",
		"user_id", resp.User.ID)

	return toTokenResponse(resp), nil
}

// Logout revokes the refresh token. It always succeeds.
func (h *Auth) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	h.logger.Debug("Auth handler: processing logout request")

	h.sessionService.Logout(ctx, req.RefreshToken)

	return &pb.LogoutResponse{Message: "Logged out successfully"}, nil
}

// GetProfile returns the profile of the authenticated caller.
func (h *Auth) GetProfile(ctx context.Context, _ *pb.GetProfileRequest) (*pb.UserProfile, error) {
	claims, ok := h.contextManager.GetIdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}

	profile, err := h.sessionService.GetProfile(ctx, claims.UserID)
	if err != nil {
		h.logger.Info("Auth handler: get profile failed",
			"user_id", claims.UserID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toUserProfile(profile), nil
}

func toTokenResponse(resp model.TokenResponse) *pb.TokenResponse {
	return &pb.TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		User:         toUserProfile(resp.User),
	}
}

func toUserProfile(p model.UserProfile) *pb.UserProfile {
	return &pb.UserProfile{
		ID:        p.ID.String(),
		Username:  p.Username,
		Email:     p.Email,
		Role:      string(p.Role),
		IsActive:  p.IsActive,
		LastLogin: p.LastLogin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
