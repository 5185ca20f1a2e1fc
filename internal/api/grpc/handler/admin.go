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

// AdminService defines operations on other users' accounts.
type AdminService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (model.UserProfile, error)
	RevokeAllSessions(ctx context.Context, userID uuid.UUID) error
}

// Admin handles gRPC endpoints reserved for privileged roles.
// Role checks happen in the authorization interceptor.
type Admin struct {
	pb.UnimplementedAdminServer
	adminService   AdminService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(adminService AdminService, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{
		adminService:   adminService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// GetUser returns any user's profile.
func (h *Admin) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.UserProfile, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "user_id: must be a valid uuid")
	}

	profile, err := h.adminService.GetProfile(ctx, userID)
	if err != nil {
		h.logger.Info("Admin handler: get user failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toUserProfile(profile), nil
}

// RevokeUserSessions revokes every active refresh token of a user.
func (h *Admin) RevokeUserSessions(ctx context.Context, req *pb.RevokeUserSessionsRequest) (*pb.RevokeUserSessionsResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "user_id: must be a valid uuid")
	}

	if err := h.adminService.RevokeAllSessions(ctx, userID); err != nil {
		h.logger.Error("Admin handler: revoke sessions failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	caller, _ := h.contextManager.GetIdentityFromContext(ctx)
	h.logger.Info("Admin handler: sessions revoked",
		"user_id", userID,
		"by", caller.UserID)

	return &pb.RevokeUserSessionsResponse{}, nil
}
