package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/panorama-auth/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// maxPasswordBytes is the longest input bcrypt reads. Longer inputs are
// truncated by CompareHashAndPassword, so they are rejected before it.
const maxPasswordBytes = 72

// Bcrypt implements PasswordHasher with a fixed bcrypt cost.
type Bcrypt struct {
	cost       int
	absentHash []byte
}

// NewBcrypt creates a hasher with the given cost. The hash used by
// VerifyAbsent is computed here so no login pays for it.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	absent, err := bcrypt.GenerateFromPassword([]byte("absent-user"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare absent-user hash: %w", err)
	}
	return &Bcrypt{cost: cost, absentHash: absent}, nil
}

// Hash salts and hashes the password. Passwords longer than 72 bytes are rejected
// by bcrypt and reported as a validation error.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.NewValidationError("password", "must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares password with hash in constant time. A password longer
// than bcrypt's input limit never matches.
func (b *Bcrypt) Verify(password, hash string) (bool, error) {
	if len(password) > maxPasswordBytes {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return false, fmt.Errorf("%w: malformed password hash: %w", model.ErrIntegrityViolation, err)
		}
		_ = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password[:maxPasswordBytes]))
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: malformed password hash: %w", model.ErrIntegrityViolation, err)
	}
}

// VerifyAbsent compares password against a throwaway hash of the same cost.
func (b *Bcrypt) VerifyAbsent(password string) {
	if len(password) > maxPasswordBytes {
		password = password[:maxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(b.absentHash, []byte(password))
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}
