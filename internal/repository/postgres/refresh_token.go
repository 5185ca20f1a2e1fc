package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/panorama-auth/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

const insertRefreshToken = `
        INSERT INTO refresh_tokens (
            id, token_id, user_id, refresh_token_hash, expires_at, is_revoked, rotated_from, created_at
        ) VALUES ($1,$2,$3,$4,$5,FALSE,$6,NOW())
    `

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, insertRefreshToken,
		token.ID, token.TokenID, token.UserID, token.TokenHash, token.ExpiresAt, token.RotatedFrom,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrTokenIDTaken
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) FindActive(ctx context.Context, tokenID string) (model.RefreshToken, error) {
	const query = `
        SELECT id, token_id, user_id, refresh_token_hash, expires_at, is_revoked, rotated_from, created_at
        FROM refresh_tokens
        WHERE token_id = $1 AND is_revoked = FALSE AND expires_at > NOW()
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, tokenID).Scan(
		&rt.ID, &rt.TokenID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt,
		&rt.IsRevoked, &rt.RotatedFrom, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by token id: %w", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	const query = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE token_id = $1 AND is_revoked = FALSE
    `
	if _, err := r.db.Exec(ctx, query, tokenID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Rotate flips the old record to revoked only if it is still active and
// inserts the successor in the same transaction. A concurrent rotation of the
// same record sees zero affected rows and gets ErrTokenRevoked.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldTokenID string, next model.RefreshToken) error {
	const revokeActive = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE token_id = $1 AND is_revoked = FALSE AND expires_at > NOW()
    `
	if next.ID == uuid.Nil {
		next.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, revokeActive, oldTokenID)
	if err != nil {
		return fmt.Errorf("failed to revoke rotated refresh token: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return model.ErrTokenRevoked
	}

	_, err = tx.Exec(ctx, insertRefreshToken,
		next.ID, next.TokenID, next.UserID, next.TokenHash, next.ExpiresAt, next.RotatedFrom,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrTokenIDTaken
		}
		return fmt.Errorf("failed to create rotated refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE user_id = $1 AND is_revoked = FALSE
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}
