package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/panorama-auth/internal/model"
)

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

// NewContextManager creates a ContextManager mock whose expectations are asserted on cleanup.
func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ContextManager) SetIdentityToContext(ctx context.Context, claims model.AccessClaims) context.Context {
	args := m.Called(ctx, claims)
	return args.Get(0).(context.Context)
}

func (m *ContextManager) GetIdentityFromContext(ctx context.Context) (model.AccessClaims, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.AccessClaims), args.Bool(1)
}
