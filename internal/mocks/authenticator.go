package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/panorama-auth/internal/model"
)

// Authenticator is a mock of middleware.Authenticator.
type Authenticator struct {
	mock.Mock
}

// NewAuthenticator creates an Authenticator mock whose expectations are asserted on cleanup.
func NewAuthenticator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Authenticator {
	m := &Authenticator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Authenticator) Authenticate(ctx context.Context, accessToken string) (model.AccessClaims, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.AccessClaims), args.Error(1)
}
