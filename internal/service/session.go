package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/metrics"
	"github.com/dtroode/panorama-auth/internal/model"
)

// Recorder counts session operations.
type Recorder interface {
	SessionEvent(operation, outcome string)
}

// Session runs the login session lifecycle: registration, login,
// refresh with rotation, and logout.
type Session struct {
	userStore             model.UserStore
	hasher                model.PasswordHasher
	tokenService          *TokenService
	recorder              Recorder
	logger                *logger.Logger
	allowSuperAdminSignup bool
	now                   func() time.Time
}

func NewSession(
	userStore model.UserStore,
	refreshTokenStore model.RefreshTokenStore,
	tokenManager model.TokenManager,
	hasher model.PasswordHasher,
	recorder Recorder,
	logger *logger.Logger,
	allowSuperAdminSignup bool,
) *Session {
	return &Session{
		userStore:             userStore,
		hasher:                hasher,
		tokenService:          NewTokenService(tokenManager, refreshTokenStore, logger),
		recorder:              recorder,
		logger:                logger,
		allowSuperAdminSignup: allowSuperAdminSignup,
		now:                   time.Now,
	}
}

// Register creates a user and starts their first session.
// The role defaults to admin; super_admin is granted only when allowed by policy.
func (s *Session) Register(ctx context.Context, params model.RegisterParams) (resp model.TokenResponse, err error) {
	defer func() { s.observe("register", err) }()

	params.Username = strings.TrimSpace(params.Username)
	params.Email = normalizeEmail(params.Email)

	s.logger.Debug("Session service: starting user registration",
		"username", params.Username,
		"email", params.Email)

	if err := validateRegistration(params); err != nil {
		return model.TokenResponse{}, err
	}

	role := params.Role
	if role == "" {
		role = model.RoleAdmin
	}
	if role == model.RoleSuperAdmin && !s.allowSuperAdminSignup {
		s.logger.Warn("Session service: super admin registration refused",
			"username", params.Username)
		return model.TokenResponse{}, model.Forbidden(model.ErrInsufficientRole)
	}

	_, err = s.userStore.FindByEmailOrUsername(ctx, params.Email, params.Username)
	if err == nil {
		s.logger.Info("Session service: user already exists",
			"username", params.Username,
			"email", params.Email)
		return model.TokenResponse{}, model.ErrConflict
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.TokenResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.TokenResponse{}, err
	}

	now := s.now()
	user, err := s.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.TokenResponse{}, model.ErrConflict
		}
		s.logger.Error("Session service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.tokenService.Issue(ctx, user)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Session service: user registered",
		"user_id", user.ID,
		"role", user.Role)

	return model.NewTokenResponse(pair, user), nil
}

// Login verifies credentials and starts a new session. An unknown email and a
// wrong password produce the same error.
func (s *Session) Login(ctx context.Context, params model.LoginParams) (resp model.TokenResponse, err error) {
	defer func() { s.observe("login", err) }()

	params.Email = normalizeEmail(params.Email)
	if err := validateLogin(params); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.userStore.FindActiveByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		s.hasher.VerifyAbsent(params.Password)
		s.logger.Debug("Session service: login for unknown or inactive user")
		return model.TokenResponse{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := s.hasher.Verify(params.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("Session service: stored password hash is unusable",
			"user_id", user.ID,
			"error", err.Error())
		return model.TokenResponse{}, model.ErrUnauthorized
	}
	if !ok {
		s.logger.Debug("Session service: invalid password", "user_id", user.ID)
		return model.TokenResponse{}, model.ErrUnauthorized
	}

	now := s.now()
	if err := s.userStore.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return model.TokenResponse{}, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	pair, err := s.tokenService.Issue(ctx, user)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Session service: user logged in",
		"user_id", user.ID,
		"role", user.Role)

	return model.NewTokenResponse(pair, user), nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked in the same step, so it can be used at most once.
func (s *Session) Refresh(ctx context.Context, refreshToken string) (resp model.TokenResponse, err error) {
	defer func() { s.observe("refresh", err) }()

	if refreshToken == "" {
		return model.TokenResponse{}, model.NewValidationError("refresh_token", "is required")
	}

	record, err := s.tokenService.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.userStore.FindActiveByID(ctx, record.UserID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Session service: refresh for inactive user",
			"user_id", record.UserID)
		return model.TokenResponse{}, model.Forbidden(model.ErrInvalidToken)
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	pair, err := s.tokenService.Rotate(ctx, record, user)
	if err != nil {
		return model.TokenResponse{}, err
	}

	s.logger.Info("Session service: session refreshed",
		"user_id", user.ID,
		"rotated_from", record.TokenID)

	return model.NewTokenResponse(pair, user), nil
}

// Logout revokes the session behind the refresh token if it can be decoded.
// It reports success regardless, so callers learn nothing about the token.
func (s *Session) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		s.observe("logout", nil)
		return
	}

	err := s.tokenService.RevokeByToken(ctx, refreshToken)
	switch {
	case errors.Is(err, model.ErrForbidden):
		s.logger.Debug("Session service: logout with undecodable token")
	case err != nil:
		s.logger.Error("Session service: failed to revoke on logout",
			"error", err.Error())
	}
	s.observe("logout", err)
}

// GetProfile returns the active user without authentication material.
func (s *Session) GetProfile(ctx context.Context, userID uuid.UUID) (model.UserProfile, error) {
	user, err := s.userStore.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UserProfile{}, model.ErrNotFound
		}
		return model.UserProfile{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.Profile(), nil
}

// RevokeAllSessions revokes every active refresh token of the user.
func (s *Session) RevokeAllSessions(ctx context.Context, userID uuid.UUID) (err error) {
	defer func() { s.observe("revoke_all", err) }()

	if err := s.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Session service: all sessions revoked", "user_id", userID)
	return nil
}

// Authenticate resolves a bearer access token into the caller's claims.
func (s *Session) Authenticate(_ context.Context, accessToken string) (model.AccessClaims, error) {
	if accessToken == "" {
		return model.AccessClaims{}, model.ErrUnauthorized
	}
	return s.tokenService.Authenticate(accessToken)
}

func (s *Session) observe(operation string, err error) {
	if s.recorder == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrForbidden):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	s.recorder.SessionEvent(operation, outcome)
}
