// Package proto describes the mrtrade.accounts.AccountService gRPC API.
//
// Messages are protobuf well-known types, so the service is declared by
// hand in the shape protoc-gen-go-grpc would emit and needs no code
// generation step.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "mrtrade.accounts.AccountService"

const (
	AccountService_CreateUser_FullMethodName  = "/" + ServiceName + "/CreateUser"
	AccountService_VerifyLogin_FullMethodName = "/" + ServiceName + "/VerifyLogin"
	AccountService_UserExists_FullMethodName  = "/" + ServiceName + "/UserExists"
	AccountService_GetProfile_FullMethodName  = "/" + ServiceName + "/GetProfile"
)

// AccountServiceClient is the client API for AccountService.
type AccountServiceClient interface {
	CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	VerifyLogin(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UserExists(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	GetProfile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc}
}

func (c *accountServiceClient) CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, AccountService_CreateUser_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) VerifyLogin(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountService_VerifyLogin_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) UserExists(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, AccountService_UserExists_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) GetProfile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountService_GetProfile_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	CreateUser(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	VerifyLogin(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UserExists(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	GetProfile(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedAccountServiceServer can be embedded for forward
// compatibility.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) CreateUser(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
}
func (UnimplementedAccountServiceServer) VerifyLogin(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyLogin not implemented")
}
func (UnimplementedAccountServiceServer) UserExists(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method UserExists not implemented")
}
func (UnimplementedAccountServiceServer) GetProfile(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

func _AccountService_CreateUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServiceServer).CreateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AccountService_CreateUser_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServiceServer).CreateUser(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _AccountService_VerifyLogin_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServiceServer).VerifyLogin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AccountService_VerifyLogin_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServiceServer).VerifyLogin(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _AccountService_UserExists_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServiceServer).UserExists(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AccountService_UserExists_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServiceServer).UserExists(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _AccountService_GetProfile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServiceServer).GetProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AccountService_GetProfile_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServiceServer).GetProfile(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler:    _AccountService_CreateUser_Handler,
		},
		{
			MethodName: "VerifyLogin",
			Handler:    _AccountService_VerifyLogin_Handler,
		},
		{
			MethodName: "UserExists",
			Handler:    _AccountService_UserExists_Handler,
		},
		{
			MethodName: "GetProfile",
			Handler:    _AccountService_GetProfile_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mrtrade/accounts.proto",
}
