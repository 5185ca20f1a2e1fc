package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/panorama-auth/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository keeps refresh token records in process memory.
// All mutations happen under one lock, which makes Rotate a test-and-set.
type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken
	now    func() time.Time
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{
		tokens: make(map[string]model.RefreshToken),
		now:    time.Now,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(token)
}

func (r *RefreshTokenRepository) FindActive(ctx context.Context, tokenID string) (model.RefreshToken, error) {
	if err := ctx.Err(); err != nil {
		return model.RefreshToken{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.tokens[tokenID]
	if !ok || !r.activeLocked(rt) {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return clone(rt), nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rt, ok := r.tokens[tokenID]; ok {
		rt.IsRevoked = true
		r.tokens[tokenID] = rt
	}
	return nil
}

func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldTokenID string, next model.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.tokens[oldTokenID]
	if !ok || !r.activeLocked(old) {
		return model.ErrTokenRevoked
	}
	if _, taken := r.tokens[next.TokenID]; taken {
		return model.ErrTokenIDTaken
	}

	old.IsRevoked = true
	r.tokens[oldTokenID] = old
	return r.insertLocked(next)
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rt := range r.tokens {
		if rt.UserID == userID && !rt.IsRevoked {
			rt.IsRevoked = true
			r.tokens[id] = rt
		}
	}
	return nil
}

func (r *RefreshTokenRepository) insertLocked(token model.RefreshToken) error {
	if _, ok := r.tokens[token.TokenID]; ok {
		return model.ErrTokenIDTaken
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.now()
	}
	r.tokens[token.TokenID] = clone(token)
	return nil
}

func (r *RefreshTokenRepository) activeLocked(rt model.RefreshToken) bool {
	return !rt.IsRevoked && rt.ExpiresAt.After(r.now())
}

func clone(rt model.RefreshToken) model.RefreshToken {
	rt.TokenHash = append([]byte(nil), rt.TokenHash...)
	return rt
}
