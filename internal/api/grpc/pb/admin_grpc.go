package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Admin_GetUser_FullMethodName            = "/panorama.auth.v1.Admin/GetUser"
	Admin_RevokeUserSessions_FullMethodName = "/panorama.auth.v1.Admin/RevokeUserSessions"
)

// AdminClient is the client API for the Admin service.
type AdminClient interface {
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserProfile, error)
	RevokeUserSessions(ctx context.Context, in *RevokeUserSessionsRequest, opts ...grpc.CallOption) (*RevokeUserSessionsResponse, error)
}

type adminClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminClient(cc grpc.ClientConnInterface) AdminClient {
	return &adminClient{cc}
}

func (c *adminClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserProfile, error) {
	out := new(UserProfile)
	if err := c.cc.Invoke(ctx, Admin_GetUser_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminClient) RevokeUserSessions(ctx context.Context, in *RevokeUserSessionsRequest, opts ...grpc.CallOption) (*RevokeUserSessionsResponse, error) {
	out := new(RevokeUserSessionsResponse)
	if err := c.cc.Invoke(ctx, Admin_RevokeUserSessions_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminServer is the server API for the Admin service.
type AdminServer interface {
	GetUser(context.Context, *GetUserRequest) (*UserProfile, error)
	RevokeUserSessions(context.Context, *RevokeUserSessionsRequest) (*RevokeUserSessionsResponse, error)
}

// UnimplementedAdminServer can be embedded to have forward compatible implementations.
type UnimplementedAdminServer struct{}

func (UnimplementedAdminServer) GetUser(context.Context, *GetUserRequest) (*UserProfile, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedAdminServer) RevokeUserSessions(context.Context, *RevokeUserSessionsRequest) (*RevokeUserSessionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RevokeUserSessions not implemented")
}

func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&Admin_ServiceDesc, srv)
}

func _Admin_GetUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServer).GetUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Admin_GetUser_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AdminServer).GetUser(ctx, req.(*GetUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Admin_RevokeUserSessions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RevokeUserSessionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AdminServer).RevokeUserSessions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Admin_RevokeUserSessions_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AdminServer).RevokeUserSessions(ctx, req.(*RevokeUserSessionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Admin_ServiceDesc is the grpc.ServiceDesc for the Admin service.
var Admin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "panorama.auth.v1.Admin",
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetUser", Handler: _Admin_GetUser_Handler},
		{MethodName: "RevokeUserSessions", Handler: _Admin_RevokeUserSessions_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "panorama/auth/v1/admin.proto",
}
