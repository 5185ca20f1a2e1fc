package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcctx "github.com/dtroode/panorama-auth/internal/api/grpc/context"
	"github.com/dtroode/panorama-auth/internal/api/grpc/pb"
	"github.com/dtroode/panorama-auth/internal/mocks"
	"github.com/dtroode/panorama-auth/internal/password"
	"github.com/dtroode/panorama-auth/internal/repository/memory"
	"github.com/dtroode/panorama-auth/internal/service"
	"github.com/dtroode/panorama-auth/internal/testutil"
	"github.com/dtroode/panorama-auth/internal/token"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	ctxMgr := mocks.NewContextManager(t)
	lg := testutil.MakeNoopLogger()

	r := New(nil, ctxMgr, lg)
	s := r.Register()
	require.NotNil(t, s)

	info := s.GetServiceInfo()
	assert.Contains(t, info, "panorama.auth.v1.Auth")
	assert.Contains(t, info, "panorama.auth.v1.Admin")
}

type clients struct {
	auth  pb.AuthClient
	admin pb.AdminClient
}

func startServer(t *testing.T) clients {
	t.Helper()

	hasher, err := password.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	codec, err := token.NewJWT(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	lg := testutil.MakeNoopLogger()
	session := service.NewSession(memory.NewUserRepository(), memory.NewRefreshTokenRepository(), codec, hasher, nil, lg, true)
	s := New(session, grpcctx.NewManager(), lg).Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return clients{auth: pb.NewAuthClient(conn), admin: pb.NewAdminClient(conn)}
}

func bearer(ctx context.Context, accessToken string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+accessToken)
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), err.Error())
}

func TestRouter_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)

	registered, err := c.auth.Register(ctx, &pb.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, int64(900), registered.ExpiresIn)
	assert.Equal(t, "admin", registered.User.Role)

	_, err = c.auth.Register(ctx, &pb.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})
	requireCode(t, err, codes.AlreadyExists)

	_, err = c.auth.Register(ctx, &pb.RegisterRequest{Username: "al", Email: "bad", Password: "1"})
	requireCode(t, err, codes.InvalidArgument)

	_, wrongErr := c.auth.Login(ctx, &pb.LoginRequest{Email: "a@x.com", Password: "wrong"})
	requireCode(t, wrongErr, codes.Unauthenticated)
	_, unknownErr := c.auth.Login(ctx, &pb.LoginRequest{Email: "nobody@x.com", Password: "wrong"})
	requireCode(t, unknownErr, codes.Unauthenticated)
	assert.Equal(t, status.Convert(wrongErr).Message(), status.Convert(unknownErr).Message())

	loggedIn, err := c.auth.Login(ctx, &pb.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, loggedIn.User.LastLogin)

	_, err = c.auth.GetProfile(ctx, &pb.GetProfileRequest{})
	requireCode(t, err, codes.Unauthenticated)
	_, err = c.auth.GetProfile(bearer(ctx, "garbage"), &pb.GetProfileRequest{})
	requireCode(t, err, codes.Unauthenticated)
	_, err = c.auth.GetProfile(bearer(ctx, loggedIn.RefreshToken), &pb.GetProfileRequest{})
	requireCode(t, err, codes.Unauthenticated)

	profile, err := c.auth.GetProfile(bearer(ctx, loggedIn.AccessToken), &pb.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	refreshed, err := c.auth.Refresh(ctx, &pb.RefreshRequest{RefreshToken: loggedIn.RefreshToken})
	require.NoError(t, err)

	_, err = c.auth.Refresh(ctx, &pb.RefreshRequest{RefreshToken: loggedIn.RefreshToken})
	requireCode(t, err, codes.PermissionDenied)

	out, err := c.auth.Logout(ctx, &pb.LogoutRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", out.Message)

	_, err = c.auth.Logout(ctx, &pb.LogoutRequest{RefreshToken: "garbage"})
	require.NoError(t, err)

	_, err = c.auth.Refresh(ctx, &pb.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	requireCode(t, err, codes.PermissionDenied)
}

func TestRouter_AdminPolicies(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)

	alice, err := c.auth.Register(ctx, &pb.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	root, err := c.auth.Register(ctx, &pb.RegisterRequest{Username: "root", Email: "root@x.com", Password: "secret1", Role: "super_admin"})
	require.NoError(t, err)

	_, err = c.admin.GetUser(ctx, &pb.GetUserRequest{UserID: root.User.ID})
	requireCode(t, err, codes.Unauthenticated)

	got, err := c.admin.GetUser(bearer(ctx, alice.AccessToken), &pb.GetUserRequest{UserID: root.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "root", got.Username)

	_, err = c.admin.RevokeUserSessions(bearer(ctx, alice.AccessToken), &pb.RevokeUserSessionsRequest{UserID: root.User.ID})
	requireCode(t, err, codes.PermissionDenied)
	assert.Equal(t, "super admin access required", status.Convert(err).Message())

	_, err = c.admin.RevokeUserSessions(bearer(ctx, root.AccessToken), &pb.RevokeUserSessionsRequest{UserID: alice.User.ID})
	require.NoError(t, err)

	_, err = c.auth.Refresh(ctx, &pb.RefreshRequest{RefreshToken: alice.RefreshToken})
	requireCode(t, err, codes.PermissionDenied)

	// access tokens stay valid until they expire
	_, err = c.auth.GetProfile(bearer(ctx, alice.AccessToken), &pb.GetProfileRequest{})
	require.NoError(t, err)
}
