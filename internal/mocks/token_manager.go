package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/panorama-auth/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

// NewTokenManager creates a TokenManager mock whose expectations are asserted on cleanup.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenManager) IssueAccess(identity model.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) IssueRefresh(userID uuid.UUID) (model.IssuedRefresh, error) {
	args := m.Called(userID)
	return args.Get(0).(model.IssuedRefresh), args.Error(1)
}

func (m *TokenManager) VerifyAccess(token string) (model.AccessClaims, bool) {
	args := m.Called(token)
	return args.Get(0).(model.AccessClaims), args.Bool(1)
}

func (m *TokenManager) VerifyRefresh(token string) (model.RefreshClaims, bool) {
	args := m.Called(token)
	return args.Get(0).(model.RefreshClaims), args.Bool(1)
}

func (m *TokenManager) AccessTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
