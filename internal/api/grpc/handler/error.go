package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/panorama-auth/internal/model"
)

// handleError maps domain errors to gRPC statuses. Messages are fixed per
// kind so internal detail never reaches the caller. Validation errors carry
// only the field and reason.
func handleError(err error) error {
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.Is(err, model.ErrValidation):
		return status.Error(codes.InvalidArgument, "invalid request")
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.AlreadyExists, model.ErrConflict.Error())
	case errors.Is(err, model.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
	case errors.Is(err, model.ErrInsufficientRole):
		return status.Error(codes.PermissionDenied, "insufficient role")
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, "invalid refresh token")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
