package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (User, error)
	FindActiveByEmail(ctx context.Context, email string) (User, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is a user as seen by callers: everything except the password hash.
type UserProfile struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Profile strips authentication material from the user.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Identity returns the claims embedded into access tokens for the user.
func (u User) Identity() Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// RegisterParams are the inputs of a registration. An empty role means admin.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     Role
}

// LoginParams are the inputs of a login.
type LoginParams struct {
	Email    string
	Password string
}
