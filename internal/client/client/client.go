package client

import (
	"context"

	"github.com/dmitrijs2005/mrtrade/internal/models"
)

// Client is the remote credential store API.
type Client interface {
	CreateUser(ctx context.Context, account models.Account, password []byte) (string, error)
	VerifyLogin(ctx context.Context, email string, password []byte) (string, error)
	UserExists(ctx context.Context, email string) (bool, error)
	GetUserData(ctx context.Context, email string) (models.Account, error)
	Logout()
	Close() error
}

var _ Client = (*GRPCClient)(nil)
