// Package credentials is the user credential store: it registers accounts,
// hashing the password on the way in, and answers login and existence
// queries against the configured repository.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/cryptox"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/accounts"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrEmailRequired     = errors.New("email is required")
)

// Messages shown to the user.
const (
	MsgUserCreated       = "User created successfully"
	MsgLoginSuccessful   = "Login successful"
	MsgUserAlreadyExists = "User already exists"
	MsgUserNotFound      = "User not found"
	MsgIncorrectPassword = "Incorrect password"
	MsgEmailRequired     = "Email is required"
	MsgInternal          = "Something went wrong, please try again"
)

// Message returns the user-facing text for an error returned by Store.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserAlreadyExists):
		return MsgUserAlreadyExists
	case errors.Is(err, ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, ErrIncorrectPassword):
		return MsgIncorrectPassword
	case errors.Is(err, ErrEmailRequired):
		return MsgEmailRequired
	}
	return MsgInternal
}

type Store struct {
	repo   accounts.Repository
	hasher cryptox.Hasher
	logger logging.Logger
}

// NewStore wires a store over repo. A nil hasher selects SHA-256.
func NewStore(repo accounts.Repository, hasher cryptox.Hasher, logger logging.Logger) *Store {
	if hasher == nil {
		hasher = cryptox.SHA256Hasher{}
	}
	return &Store{repo: repo, hasher: hasher, logger: logger}
}

// CreateUser registers account with the hash of password. Whatever
// account.PasswordHash holds on input is replaced. On success the returned
// message is MsgUserCreated; on failure it is the reason shown to the user.
func (s *Store) CreateUser(ctx context.Context, account models.Account, password []byte) (string, error) {
	if account.Email == "" {
		return MsgEmailRequired, ErrEmailRequired
	}

	exists, err := s.repo.Exists(ctx, account.Email)
	if err != nil {
		return s.internal(ctx, "exists check failed", account.Email, err)
	}
	if exists {
		return MsgUserAlreadyExists, ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return s.internal(ctx, "hash password failed", account.Email, err)
	}
	account.PasswordHash = hash

	if err := s.repo.Create(ctx, &account); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return MsgUserAlreadyExists, ErrUserAlreadyExists
		}
		return s.internal(ctx, "create user failed", account.Email, err)
	}

	s.logger.Info(ctx, "user created", "email", account.Email)
	return MsgUserCreated, nil
}

// VerifyLogin checks password against the stored hash of email.
func (s *Store) VerifyLogin(ctx context.Context, email string, password []byte) (string, error) {
	account, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return MsgUserNotFound, ErrUserNotFound
		}
		return s.internal(ctx, "load user failed", email, err)
	}

	ok, err := cryptox.Verify(password, account.PasswordHash)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash is unusable", "email", email, "error", err)
		return MsgIncorrectPassword, ErrIncorrectPassword
	}
	if !ok {
		return MsgIncorrectPassword, ErrIncorrectPassword
	}

	return MsgLoginSuccessful, nil
}

func (s *Store) UserExists(ctx context.Context, email string) (bool, error) {
	ok, err := s.repo.Exists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return ok, nil
}

// GetUserData returns the full record of email, hash included, or the
// zero Account when there is none.
func (s *Store) GetUserData(ctx context.Context, email string) (models.Account, error) {
	account, err := s.repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Account{}, nil
		}
		return models.Account{}, fmt.Errorf("get user data: %w", err)
	}
	return *account, nil
}

// Ping reports whether the underlying repository is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Store) internal(ctx context.Context, msg, email string, err error) (string, error) {
	s.logger.Error(ctx, msg, "email", email, "error", err)
	return MsgInternal, fmt.Errorf("%s: %w", msg, err)
}
