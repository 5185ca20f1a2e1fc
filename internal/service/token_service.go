package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/panorama-auth/internal/logger"
	"github.com/dtroode/panorama-auth/internal/model"
	"github.com/dtroode/panorama-auth/internal/token"
)

// TokenService provides high-level operations for issuing, rotating,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger, now: time.Now}
}

// Issue signs a new access/refresh pair for the user and persists the refresh record.
func (s *TokenService) Issue(ctx context.Context, user model.User) (model.TokenPair, error) {
	pair, record, err := s.sign(user, nil)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Create(ctx, record); err != nil {
		return model.TokenPair{}, s.persistError(record, err)
	}

	return pair, nil
}

// ValidateRefresh checks a presented refresh token against its stored record:
// signature and type, an active record for its token id, and a matching hash.
// Every failure is reported as Forbidden.
func (s *TokenService) ValidateRefresh(ctx context.Context, presented string) (model.RefreshToken, error) {
	claims, ok := s.manager.VerifyRefresh(presented)
	if !ok {
		return model.RefreshToken{}, model.Forbidden(model.ErrInvalidToken)
	}

	rt, err := s.store.FindActive(ctx, claims.TokenID)
	if errors.Is(err, model.ErrNotFound) {
		return model.RefreshToken{}, model.Forbidden(model.ErrTokenRevoked)
	}
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if rt.UserID != claims.UserID || !token.MatchesHash(presented, rt.TokenHash) {
		s.logger.Warn("Token service: refresh token does not match stored record",
			"token_id", claims.TokenID,
			"user_id", claims.UserID)
		return model.RefreshToken{}, model.Forbidden(model.ErrTokenMismatch)
	}

	return rt, nil
}

// Rotate revokes the old record and stores a successor in one atomic step.
// If the old record was revoked in the meantime, no pair is returned.
func (s *TokenService) Rotate(ctx context.Context, old model.RefreshToken, user model.User) (model.TokenPair, error) {
	rotatedFrom := old.TokenID
	pair, record, err := s.sign(user, &rotatedFrom)
	if err != nil {
		return model.TokenPair{}, err
	}

	err = s.store.Rotate(ctx, old.TokenID, record)
	if errors.Is(err, model.ErrTokenRevoked) {
		s.logger.Warn("Token service: refresh token reused after rotation",
			"token_id", old.TokenID,
			"user_id", old.UserID)
		return model.TokenPair{}, model.Forbidden(model.ErrTokenRevoked)
	}
	if err != nil {
		return model.TokenPair{}, s.persistError(record, err)
	}

	return pair, nil
}

// RevokeByToken revokes the record a presented refresh token points to.
// Expired tokens that are still correctly signed cannot be decoded and are
// left to expire on their own.
func (s *TokenService) RevokeByToken(ctx context.Context, presented string) error {
	claims, ok := s.manager.VerifyRefresh(presented)
	if !ok {
		return model.Forbidden(model.ErrInvalidToken)
	}
	if err := s.store.Revoke(ctx, claims.TokenID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// Authenticate resolves an access token into its claims.
func (s *TokenService) Authenticate(accessToken string) (model.AccessClaims, error) {
	claims, ok := s.manager.VerifyAccess(accessToken)
	if !ok {
		return model.AccessClaims{}, model.ErrUnauthorized
	}
	return claims, nil
}

func (s *TokenService) sign(user model.User, rotatedFrom *string) (model.TokenPair, model.RefreshToken, error) {
	access, err := s.manager.IssueAccess(user.Identity())
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.IssueRefresh(user.ID)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue refresh: %w", err)
	}

	record := model.RefreshToken{
		ID:          uuid.New(),
		TokenID:     refresh.TokenID,
		UserID:      user.ID,
		TokenHash:   token.HashRefresh(refresh.Token),
		ExpiresAt:   refresh.ExpiresAt,
		RotatedFrom: rotatedFrom,
		CreatedAt:   s.now(),
	}

	pair := model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(s.manager.AccessTTL() / time.Second),
	}

	return pair, record, nil
}

func (s *TokenService) persistError(record model.RefreshToken, err error) error {
	if errors.Is(err, model.ErrTokenIDTaken) {
		s.logger.Error("Token service: refresh token id collision",
			"token_id", record.TokenID,
			"user_id", record.UserID)
		return fmt.Errorf("%w: %w", model.ErrIntegrityViolation, err)
	}
	return fmt.Errorf("persist refresh: %w", err)
}
