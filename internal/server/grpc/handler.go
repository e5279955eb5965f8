package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	pb "github.com/dmitrijs2005/mrtrade/internal/proto"
	"github.com/dmitrijs2005/mrtrade/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps store errors to gRPC codes; the status message is the
// text shown to the user.
func toStatus(err error) error {
	msg := credentials.Message(err)
	switch {
	case errors.Is(err, credentials.ErrUserAlreadyExists):
		return status.Error(codes.AlreadyExists, msg)
	case errors.Is(err, credentials.ErrUserNotFound):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, credentials.ErrIncorrectPassword):
		return status.Error(codes.Unauthenticated, msg)
	case errors.Is(err, credentials.ErrEmailRequired):
		return status.Error(codes.InvalidArgument, msg)
	}
	return status.Error(codes.Internal, msg)
}

func (s *GRPCServer) CreateUser(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	account, password := pb.ParseCreateUserRequest(req)

	msg, err := s.store.CreateUser(ctx, account, []byte(password))
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(msg), nil
}

func (s *GRPCServer) VerifyLogin(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email, password := pb.ParseVerifyLoginRequest(req)

	msg, err := s.store.VerifyLogin(ctx, email, []byte(password))
	if err != nil {
		return nil, toStatus(err)
	}

	token, err := auth.GenerateToken(email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, status.Error(codes.Internal, credentials.MsgInternal)
	}

	resp, err := pb.NewVerifyLoginResponse(msg, token)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func (s *GRPCServer) UserExists(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	ok, err := s.store.UserExists(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(ok), nil
}

// GetProfile returns the profile of the token holder, without the hash.
func (s *GRPCServer) GetProfile(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	email, ok := EmailFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	account, err := s.store.GetUserData(ctx, email)
	if err != nil {
		return nil, toStatus(err)
	}
	if account.IsZero() {
		return nil, toStatus(credentials.ErrUserNotFound)
	}

	resp, err := pb.ProfileToStruct(account)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}
