package middleware

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/panorama-auth/internal/mocks"
	"github.com/dtroode/panorama-auth/internal/model"
	"github.com/dtroode/panorama-auth/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	validClaims := model.AccessClaims{Identity: model.Identity{UserID: uuid.New(), Role: model.RoleAdmin}}

	tests := []struct {
		name         string
		mdAuthHeader string
		expectToken  string
		claims       model.AccessClaims
		authErr      error
		wantGRPCCode codes.Code
		wantMsg      string
		wantErr      bool
		expectSetCtx bool
	}{
		{
			name:         "missing authorization header",
			wantGRPCCode: codes.Unauthenticated,
			wantMsg:      "access token required",
			wantErr:      true,
		},
		{
			name:         "wrong scheme",
			mdAuthHeader: "Basic dXNlcjpwYXNz",
			wantGRPCCode: codes.Unauthenticated,
			wantMsg:      "access token required",
			wantErr:      true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			expectToken:  "invalid",
			authErr:      model.ErrUnauthorized,
			wantGRPCCode: codes.Unauthenticated,
			wantMsg:      "invalid or expired access token",
			wantErr:      true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			expectToken:  "token",
			claims:       validClaims,
			wantGRPCCode: codes.OK,
			expectSetCtx: true,
		},
		{
			name:         "scheme is case insensitive",
			mdAuthHeader: "bearer token",
			expectToken:  "token",
			claims:       validClaims,
			wantGRPCCode: codes.OK,
			expectSetCtx: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg := testutil.MakeNoopLogger()
			cm := mocks.NewContextManager(t)

			if tt.expectSetCtx {
				cm.On("SetIdentityToContext", mock.Anything, tt.claims).Return(context.Background()).Once()
			}

			authenticator := mocks.NewAuthenticator(t)
			if tt.expectToken != "" {
				authenticator.On("Authenticate", mock.Anything, tt.expectToken).Return(tt.claims, tt.authErr).Once()
			}
			m := NewAuthenticate(authenticator, cm, lg)

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantGRPCCode, st.Code())
				assert.Equal(t, tt.wantMsg, st.Message())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}
