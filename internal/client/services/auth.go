// Package services contains application services for the MR Trade client.
// This file defines the authentication service: login, registration from
// a signup draft, the password reset request and the profile lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mrtrade/internal/client/client"
	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/dmitrijs2005/mrtrade/internal/signup"
)

var (
	ErrEmptyFields  = errors.New("empty login fields")
	ErrEmailMissing = errors.New("email missing")
	ErrEmailInvalid = errors.New("email invalid")
	ErrEmailUnknown = errors.New("email not registered")
	ErrNotLoggedIn  = errors.New("not logged in")
)

const (
	MsgEmptyFields  = "Please fill all fields"
	MsgEmailMissing = "Please enter your email address"
	MsgEmailInvalid = "Please enter a valid email address"
	MsgEmailUnknown = "Email not found in our system"
	MsgNotLoggedIn  = "Please log in first"
	MsgUnavailable  = "Server unavailable, please try again later"
	MsgSessionEnded = "Session expired, please log in again"
)

// Message returns the text shown to the user for err, falling back to the
// credential store's messages.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrEmptyFields):
		return MsgEmptyFields
	case errors.Is(err, ErrEmailMissing):
		return MsgEmailMissing
	case errors.Is(err, ErrEmailInvalid):
		return MsgEmailInvalid
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, client.ErrUnauthorized):
		return MsgNotLoggedIn
	case errors.Is(err, client.ErrUnavailable):
		return MsgUnavailable
	case errors.Is(err, common.ErrTokenExpired):
		return MsgSessionEnded
	case errors.Is(err, ErrEmailUnknown):
		return MsgEmailUnknown
	case errors.Is(err, signup.ErrPasswordMismatch):
		return signup.MsgPasswordMismatch
	}
	var rf *signup.RequiredFieldError
	if errors.As(err, &rf) {
		msg := rf.Error()
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
	return credentials.Message(err)
}

// Credentials is the credential store as seen by the client. It is served
// by credentials.Store locally and by client.GRPCClient remotely.
type Credentials interface {
	CreateUser(ctx context.Context, account models.Account, password []byte) (string, error)
	VerifyLogin(ctx context.Context, email string, password []byte) (string, error)
	UserExists(ctx context.Context, email string) (bool, error)
	GetUserData(ctx context.Context, email string) (models.Account, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: verify credentials and remember the session email.
//   - Register: create the account collected by a completed draft.
//   - ForgotPassword: validate the email and simulate sending a reset link.
//   - Profile: return the stored profile of the logged-in user.
//   - Logout: forget the session.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Register(ctx context.Context, draft *signup.Draft) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	Profile(ctx context.Context) (models.Account, error)
	CurrentUser() string
	Logout()
}

// authService is the concrete AuthService over a Credentials backend.
type authService struct {
	store  Credentials
	logger logging.Logger
	email  string
}

// NewAuthService constructs an AuthService bound to store.
func NewAuthService(store Credentials, logger logging.Logger) AuthService {
	return &authService{store: store, logger: logger.With("module", "auth_service")}
}

// Login trims the email, rejects empty fields and delegates to the store.
func (a *authService) Login(ctx context.Context, email string, password []byte) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return "", ErrEmptyFields
	}

	msg, err := a.store.VerifyLogin(ctx, email, password)
	if err != nil {
		return "", err
	}
	a.email = email
	return msg, nil
}

// Register creates the account described by a completed draft.
func (a *authService) Register(ctx context.Context, draft *signup.Draft) (string, error) {
	if !draft.Complete() {
		return "", fmt.Errorf("%w: at %s", signup.ErrWrongStep, draft.Step())
	}
	return a.store.CreateUser(ctx, draft.Account(), draft.Password())
}

// ForgotPassword checks that email belongs to a user. No mail is sent;
// the request is only logged.
func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailMissing
	}
	if !strings.Contains(email, "@") {
		return "", ErrEmailInvalid
	}

	ok, err := a.store.UserExists(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return "", ErrEmailUnknown
	}

	a.logger.Info(ctx, "reset link sent", "email", email)
	return fmt.Sprintf("Reset link sent to %s", email), nil
}

// Profile returns the stored profile of the logged-in user.
func (a *authService) Profile(ctx context.Context) (models.Account, error) {
	if a.email == "" {
		return models.Account{}, ErrNotLoggedIn
	}

	account, err := a.store.GetUserData(ctx, a.email)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsZero() {
		return models.Account{}, credentials.ErrUserNotFound
	}
	return account, nil
}

func (a *authService) CurrentUser() string {
	return a.email
}

// Logout forgets the session, including a remote access token.
func (a *authService) Logout() {
	a.email = ""
	if l, ok := a.store.(interface{ Logout() }); ok {
		l.Logout()
	}
}
