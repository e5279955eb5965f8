// Package accounts contains the persistence backends of the credential
// store: the JSON document file, SQLite, PostgreSQL and Redis.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/mrtrade/internal/models"
)

// Repository stores account records keyed by email.
//
// Records are written as given: hashing happens in the credential store,
// never here. Get returns common.ErrorNotFound for unknown emails and
// Create returns common.ErrorAlreadyExists when the email is taken.
type Repository interface {
	Get(ctx context.Context, email string) (*models.Account, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *models.Account) error
	List(ctx context.Context) ([]*models.Account, error)
	Ping(ctx context.Context) error
	Close() error
}
