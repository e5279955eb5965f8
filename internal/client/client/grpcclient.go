package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	pb "github.com/dmitrijs2005/mrtrade/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const callTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AccountServiceClient

	mu          sync.RWMutex
	accessToken string
	email       string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current token. A server reporting
// the token as expired ends the session.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	if st, ok := status.FromError(err); ok &&
		st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error() {
		s.Logout()
	}
	return err
}

func NewAccountClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAccountServiceClient(conn)
	return nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) CreateUser(ctx context.Context, account models.Account, password []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req, err := pb.NewCreateUserRequest(account, string(password))
	if err != nil {
		return "", err
	}

	resp, err := s.client.CreateUser(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.GetValue(), nil
}

// VerifyLogin checks the credentials remotely and, on success, keeps the
// issued access token for later calls.
func (s *GRPCClient) VerifyLogin(ctx context.Context, email string, password []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req, err := pb.NewVerifyLoginRequest(email, string(password))
	if err != nil {
		return "", err
	}

	resp, err := s.client.VerifyLogin(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}

	msg, token := pb.ParseVerifyLoginResponse(resp)

	s.mu.Lock()
	s.accessToken = token
	s.email = email
	s.mu.Unlock()

	return msg, nil
}

func (s *GRPCClient) UserExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.UserExists(ctx, wrapperspb.String(email))
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.GetValue(), nil
}

// GetUserData returns the profile of the logged-in user. The server only
// serves the token holder, so any other email requires a new login.
func (s *GRPCClient) GetUserData(ctx context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	loggedIn := s.accessToken != "" && s.email == email
	s.mu.RUnlock()
	if !loggedIn {
		return models.Account{}, ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.GetProfile(ctx, &emptypb.Empty{})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.Account{}, nil
		}
		return models.Account{}, s.mapError(err)
	}
	return pb.ProfileFromStruct(resp), nil
}

// Logout forgets the access token.
func (s *GRPCClient) Logout() {
	s.mu.Lock()
	s.accessToken = ""
	s.email = ""
	s.mu.Unlock()
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.AlreadyExists:
		return credentials.ErrUserAlreadyExists
	case codes.NotFound:
		return credentials.ErrUserNotFound
	case codes.InvalidArgument:
		return credentials.ErrEmailRequired
	case codes.Unauthenticated:
		switch st.Message() {
		case credentials.MsgIncorrectPassword:
			return credentials.ErrIncorrectPassword
		case common.ErrTokenExpired.Error():
			return common.ErrTokenExpired
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
