package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/panorama-auth/internal/model"
)

// SessionService is a mock of handler.SessionService.
type SessionService struct {
	mock.Mock
}

// NewSessionService creates a SessionService mock whose expectations are asserted on cleanup.
func NewSessionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionService {
	m := &SessionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionService) Register(ctx context.Context, params model.RegisterParams) (model.TokenResponse, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.TokenResponse), args.Error(1)
}

func (m *SessionService) Login(ctx context.Context, params model.LoginParams) (model.TokenResponse, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.TokenResponse), args.Error(1)
}

func (m *SessionService) Refresh(ctx context.Context, refreshToken string) (model.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenResponse), args.Error(1)
}

func (m *SessionService) Logout(ctx context.Context, refreshToken string) {
	m.Called(ctx, refreshToken)
}

func (m *SessionService) GetProfile(ctx context.Context, userID uuid.UUID) (model.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.UserProfile), args.Error(1)
}
