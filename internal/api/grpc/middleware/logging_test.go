package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/panorama-auth/internal/testutil"
)

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	lg := NewLogging(testutil.MakeNoopLogger())

	tests := []struct {
		name     string
		handler  grpc.UnaryHandler
		wantCode codes.Code
	}{
		{
			name: "success path",
			handler: func(ctx context.Context, req any) (any, error) {
				time.Sleep(10 * time.Millisecond)
				return "ok", nil
			},
			wantCode: codes.OK,
		},
		{
			name: "client error propagates",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.InvalidArgument, "bad input")
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "server error propagates",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.Internal, "internal server error")
			},
			wantCode: codes.Internal,
		},
		{
			name: "non-grpc error is returned unchanged",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("boom")
			},
			wantCode: codes.Unknown,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := peer.NewContext(context.Background(), &peer.Peer{
				Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5000},
			})
			info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
			resp, err := lg.HandleGRPC(ctx, struct{}{}, info, tt.handler)

			if tt.wantCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "ok", resp)
				return
			}

			assert.Nil(t, resp)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
}

func TestLogging_HandleGRPC_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{name: "ok", err: nil, wantLevel: "INFO", wantMsg: "gRPC request completed"},
		{name: "rejected", err: status.Error(codes.PermissionDenied, "insufficient role"), wantLevel: "WARN", wantMsg: "gRPC request rejected"},
		{name: "failed", err: status.Error(codes.Internal, "internal server error"), wantLevel: "ERROR", wantMsg: "gRPC request failed"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, buf := testutil.MakeBufferLogger()
			info := &grpc.UnaryServerInfo{FullMethod: "/panorama.auth.v1.Auth/Login"}
			_, _ = NewLogging(l).HandleGRPC(context.Background(), struct{}{}, info, func(ctx context.Context, req any) (any, error) {
				return nil, tt.err
			})

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Equal(t, "/panorama.auth.v1.Auth/Login", entry["method"])
			assert.NotContains(t, entry, "peer")
		})
	}
}
