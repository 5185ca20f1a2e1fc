package service

import (
	"net/mail"
	"strings"

	"github.com/dtroode/panorama-auth/internal/model"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 6
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateEmail(email string) error {
	if email == "" {
		return model.NewValidationError("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.NewValidationError("email", "must be a valid email")
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return model.NewValidationError("username", "must be 3 to 30 characters")
	}
	for _, r := range username {
		if !isAlnum(r) {
			return model.NewValidationError("username", "must only contain letters and digits")
		}
	}
	return nil
}

func validateRegistration(p model.RegisterParams) error {
	if err := validateUsername(p.Username); err != nil {
		return err
	}
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if len(p.Password) < minPasswordLen {
		return model.NewValidationError("password", "must be at least 6 characters")
	}
	if p.Role != "" && !p.Role.Valid() {
		return model.NewValidationError("role", "must be admin or super_admin")
	}
	return nil
}

func validateLogin(p model.LoginParams) error {
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if p.Password == "" {
		return model.NewValidationError("password", "is required")
	}
	return nil
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
