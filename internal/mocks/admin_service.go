package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/panorama-auth/internal/model"
)

// AdminService is a mock of handler.AdminService.
type AdminService struct {
	mock.Mock
}

// NewAdminService creates an AdminService mock whose expectations are asserted on cleanup.
func NewAdminService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AdminService {
	m := &AdminService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AdminService) GetProfile(ctx context.Context, userID uuid.UUID) (model.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.UserProfile), args.Error(1)
}

func (m *AdminService) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
