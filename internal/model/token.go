package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "Bearer"

// TokenManager signs and verifies access and refresh tokens.
// Verification never fails loudly: the boolean is false for any
// bad signature, malformed payload, wrong type or expired token.
type TokenManager interface {
	IssueAccess(identity Identity) (string, error)
	IssueRefresh(userID uuid.UUID) (IssuedRefresh, error)
	VerifyAccess(token string) (AccessClaims, bool)
	VerifyRefresh(token string) (RefreshClaims, bool)
	AccessTTL() time.Duration
}

// Identity is what an access token asserts about its bearer.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     Role
}

// AccessClaims are the verified contents of an access token.
type AccessClaims struct {
	Identity
	ExpiresAt time.Time
}

// RefreshClaims are the verified contents of a refresh token.
type RefreshClaims struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// IssuedRefresh is a freshly signed refresh token and its lookup key.
type IssuedRefresh struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenPair is an access token with its paired refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenResponse is returned by every operation that starts or extends a session.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	User         UserProfile `json:"user"`
}

// NewTokenResponse builds a bearer response for the pair and user.
func NewTokenResponse(pair TokenPair, user User) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
		User:         user.Profile(),
	}
}
