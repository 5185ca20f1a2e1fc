package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/panorama-auth/internal/model"
)

const (
	issuer      = "panorama-auth"
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var _ model.TokenManager = (*JWT)(nil)

// Config holds the key material and lifetimes for both token classes.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AccessClaims represents the signed payload of an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	TokenType string     `json:"type"`
}

// RefreshClaims represents the signed payload of a refresh token.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"id"`
	TokenID   string    `json:"token_id"`
	TokenType string    `json:"type"`
}

// JWT implements TokenManager with HS256 and one secret per token class.
type JWT struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWT creates a token manager. Missing, shared or lifetime-less key material
// is a configuration error.
func NewJWT(cfg Config) (*JWT, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &JWT{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}, nil
}

// AccessTTL returns the lifetime of access tokens.
func (j *JWT) AccessTTL() time.Duration {
	return j.accessTTL
}

// IssueAccess creates a short-lived access token carrying the identity.
func (j *JWT) IssueAccess(identity model.Identity) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		UserID:    identity.UserID,
		Username:  identity.Username,
		Email:     identity.Email,
		Role:      identity.Role,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString(j.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// IssueRefresh creates a long-lived refresh token with a fresh random token id.
func (j *JWT) IssueRefresh(userID uuid.UUID) (model.IssuedRefresh, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return model.IssuedRefresh{}, fmt.Errorf("failed to generate token id: %w", err)
	}
	tokenID := id.String()

	now := j.now()
	expiresAt := now.Add(j.refreshTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    userID,
		TokenID:   tokenID,
		TokenType: typeRefresh,
	})

	tokenString, err := token.SignedString(j.refreshSecret)
	if err != nil {
		return model.IssuedRefresh{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return model.IssuedRefresh{Token: tokenString, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (j *JWT) VerifyAccess(tokenString string) (model.AccessClaims, bool) {
	claims := &AccessClaims{}
	if !j.parse(tokenString, claims, j.accessSecret) {
		return model.AccessClaims{}, false
	}
	if claims.TokenType != typeAccess || claims.UserID == uuid.Nil || !claims.Role.Valid() {
		return model.AccessClaims{}, false
	}

	return model.AccessClaims{
		Identity: model.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}

// VerifyRefresh validates a refresh token and returns its claims.
// Tokens whose type is not refresh are rejected even if correctly signed.
func (j *JWT) VerifyRefresh(tokenString string) (model.RefreshClaims, bool) {
	claims := &RefreshClaims{}
	if !j.parse(tokenString, claims, j.refreshSecret) {
		return model.RefreshClaims{}, false
	}
	if claims.TokenType != typeRefresh || claims.TokenID == "" || claims.UserID == uuid.Nil {
		return model.RefreshClaims{}, false
	}

	return model.RefreshClaims{
		UserID:    claims.UserID,
		TokenID:   claims.TokenID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}

func (j *JWT) parse(tokenString string, claims jwt.Claims, secret []byte) bool {
	if tokenString == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return false
	}

	return token.Valid
}
