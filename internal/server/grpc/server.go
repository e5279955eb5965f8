// Package grpc exposes the credential store as the
// mrtrade.accounts.AccountService gRPC service.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	pb "github.com/dmitrijs2005/mrtrade/internal/proto"
	"google.golang.org/grpc"
)

// AccountStore is the part of credentials.Store the service calls.
type AccountStore interface {
	CreateUser(ctx context.Context, account models.Account, password []byte) (string, error)
	VerifyLogin(ctx context.Context, email string, password []byte) (string, error)
	UserExists(ctx context.Context, email string) (bool, error)
	GetUserData(ctx context.Context, email string) (models.Account, error)
}

type GRPCServer struct {
	pb.UnimplementedAccountServiceServer
	address   string
	store     AccountStore
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewGRPCServer(address string, l logging.Logger, store AccountStore, secretKey string, tokenTTL time.Duration) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		store:     store,
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterAccountServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
