package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	pb "github.com/dmitrijs2005/mrtrade/internal/proto"
	"github.com/dmitrijs2005/mrtrade/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const emailKey ctxKey = "email"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "x-request-id"

// protectedMethods require a valid access token.
var protectedMethods = map[string]bool{
	pb.AccountService_GetProfile_FullMethodName: true,
}

// EmailFromContext returns the email the access token was issued to.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

func firstValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// loggingInterceptor tags each call with a request id, echoes it back in
// the response header and logs the outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := firstValue(ctx, RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

	started := time.Now()
	resp, err := handler(ctx, req)

	l := s.logger.With("request_id", requestID, "method", info.FullMethod)
	code := status.Code(err)
	if code == codes.Internal || code == codes.Unknown {
		l.Error(ctx, "request failed", "code", code.String(), "duration", time.Since(started))
	} else {
		l.Info(ctx, "request served", "code", code.String(), "duration", time.Since(started))
	}
	return resp, err
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := firstValue(ctx, common.AccessTokenHeaderName)
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	email, err := auth.GetEmailFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, emailKey, email), req)
}
