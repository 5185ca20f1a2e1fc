package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists one record per issued refresh token.
// Records are never deleted; revocation only flips IsRevoked.
type RefreshTokenStore interface {
	// Create inserts a record. Returns ErrTokenIDTaken if the token id exists.
	Create(ctx context.Context, token RefreshToken) error
	// FindActive returns the record only if it is unrevoked and unexpired,
	// ErrNotFound otherwise.
	FindActive(ctx context.Context, tokenID string) (RefreshToken, error)
	// Revoke is idempotent: unknown or revoked ids are not an error.
	Revoke(ctx context.Context, tokenID string) error
	// Rotate revokes oldTokenID and inserts next atomically. Returns
	// ErrTokenRevoked if oldTokenID was no longer active.
	Rotate(ctx context.Context, oldTokenID string, next RefreshToken) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the server-side record of an issued refresh token.
type RefreshToken struct {
	ID          uuid.UUID
	TokenID     string
	UserID      uuid.UUID
	TokenHash   []byte
	ExpiresAt   time.Time
	IsRevoked   bool
	RotatedFrom *string
	CreatedAt   time.Time
}
