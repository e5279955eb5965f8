package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/mrtrade/internal/client/client"
	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/accounts"
	"github.com/dmitrijs2005/mrtrade/internal/signup"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	l, err := logging.New(io.Discard, "text", "debug")
	require.NoError(t, err)
	return l
}

func localStore(t *testing.T) *credentials.Store {
	t.Helper()
	repo, err := accounts.OpenJSONFile(context.Background(), filepath.Join(t.TempDir(), "users_db.json"), accounts.LoadPolicyFail, testLogger(t))
	require.NoError(t, err)
	return credentials.NewStore(repo, nil, testLogger(t))
}

func completedDraft(t *testing.T, email string) *signup.Draft {
	t.Helper()
	d := signup.NewDraft()
	require.NoError(t, d.SetProfile("John Doe", "johnd"))
	require.NoError(t, d.SetContact(email, "+371 2000", "Latvia"))
	require.NoError(t, d.SetPassword([]byte("Secret#123"), []byte("Secret#123")))
	return d
}

// ---- fake credentials ----

type fakeCredentials struct {
	verifyErr  error
	existsRet  bool
	existsErr  error
	profileRet models.Account
	profileErr error

	lastVerifyEmail string
	lastProfileArg  string
	logoutCalls     int
}

func (f *fakeCredentials) CreateUser(ctx context.Context, account models.Account, password []byte) (string, error) {
	return credentials.MsgUserCreated, nil
}
func (f *fakeCredentials) VerifyLogin(ctx context.Context, email string, password []byte) (string, error) {
	f.lastVerifyEmail = email
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return credentials.MsgLoginSuccessful, nil
}
func (f *fakeCredentials) UserExists(ctx context.Context, email string) (bool, error) {
	return f.existsRet, f.existsErr
}
func (f *fakeCredentials) GetUserData(ctx context.Context, email string) (models.Account, error) {
	f.lastProfileArg = email
	return f.profileRet, f.profileErr
}
func (f *fakeCredentials) Logout() { f.logoutCalls++ }

// ---- Login ----

func TestLogin_EmptyFields(t *testing.T) {
	f := &fakeCredentials{}
	s := NewAuthService(f, testLogger(t))

	_, err := s.Login(context.Background(), "   ", []byte("pw"))
	require.ErrorIs(t, err, ErrEmptyFields)

	_, err = s.Login(context.Background(), "a@b.c", nil)
	require.ErrorIs(t, err, ErrEmptyFields)
	require.Empty(t, f.lastVerifyEmail)
	require.Equal(t, "Please fill all fields", Message(err))
}

func TestLogin_TrimsEmailAndRemembersSession(t *testing.T) {
	f := &fakeCredentials{}
	s := NewAuthService(f, testLogger(t))

	msg, err := s.Login(context.Background(), "  a@b.c ", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, credentials.MsgLoginSuccessful, msg)
	require.Equal(t, "a@b.c", f.lastVerifyEmail)
	require.Equal(t, "a@b.c", s.CurrentUser())
}

func TestLogin_FailureKeepsNoSession(t *testing.T) {
	f := &fakeCredentials{verifyErr: credentials.ErrIncorrectPassword}
	s := NewAuthService(f, testLogger(t))

	_, err := s.Login(context.Background(), "a@b.c", []byte("pw"))
	require.ErrorIs(t, err, credentials.ErrIncorrectPassword)
	require.Empty(t, s.CurrentUser())
	require.Equal(t, "Incorrect password", Message(err))
}

// ---- Register ----

func TestRegister_CreatesAccountThenLogsIn(t *testing.T) {
	s := NewAuthService(localStore(t), testLogger(t))
	ctx := context.Background()

	msg, err := s.Register(ctx, completedDraft(t, " john@example.com "))
	require.NoError(t, err)
	require.Equal(t, credentials.MsgUserCreated, msg)

	_, err = s.Register(ctx, completedDraft(t, "john@example.com"))
	require.ErrorIs(t, err, credentials.ErrUserAlreadyExists)
	require.Equal(t, "User already exists", Message(err))

	_, err = s.Login(ctx, "john@example.com", []byte("Secret#123"))
	require.NoError(t, err)

	got, err := s.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "John Doe", got.FullName)
	require.Equal(t, "Latvia", got.Country)
}

func TestRegister_IncompleteDraft(t *testing.T) {
	s := NewAuthService(&fakeCredentials{}, testLogger(t))

	d := signup.NewDraft()
	require.NoError(t, d.SetProfile("John Doe", "johnd"))

	_, err := s.Register(context.Background(), d)
	require.ErrorIs(t, err, signup.ErrWrongStep)
}

// ---- ForgotPassword ----

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		exists  bool
		wantErr error
		wantMsg string
	}{
		{name: "empty", email: "  ", wantErr: ErrEmailMissing, wantMsg: "Please enter your email address"},
		{name: "no at sign", email: "john.example.com", wantErr: ErrEmailInvalid, wantMsg: "Please enter a valid email address"},
		{name: "unknown", email: "nobody@example.com", wantErr: ErrEmailUnknown, wantMsg: "Email not found in our system"},
		{name: "known", email: " john@example.com", exists: true, wantMsg: "Reset link sent to john@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAuthService(&fakeCredentials{existsRet: tt.exists}, testLogger(t))

			msg, err := s.ForgotPassword(context.Background(), tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, tt.wantMsg, Message(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestForgotPassword_StoreError(t *testing.T) {
	s := NewAuthService(&fakeCredentials{existsErr: client.ErrUnavailable}, testLogger(t))

	_, err := s.ForgotPassword(context.Background(), "a@b.c")
	require.ErrorIs(t, err, client.ErrUnavailable)
	require.Equal(t, MsgUnavailable, Message(err))
}

// ---- Profile / Logout ----

func TestProfile_RequiresLogin(t *testing.T) {
	s := NewAuthService(&fakeCredentials{}, testLogger(t))

	_, err := s.Profile(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestProfile_MissingRecord(t *testing.T) {
	f := &fakeCredentials{}
	s := NewAuthService(f, testLogger(t))
	_, err := s.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)

	_, err = s.Profile(context.Background())
	require.ErrorIs(t, err, credentials.ErrUserNotFound)
	require.Equal(t, "a@b.c", f.lastProfileArg)

	f.profileErr = errors.New("boom")
	_, err = s.Profile(context.Background())
	require.Error(t, err)
	require.Equal(t, credentials.MsgInternal, Message(err))
}

func TestLogout_ForwardsToRemote(t *testing.T) {
	f := &fakeCredentials{}
	s := NewAuthService(f, testLogger(t))
	_, err := s.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)

	s.Logout()
	require.Empty(t, s.CurrentUser())
	require.Equal(t, 1, f.logoutCalls)
}

func TestLogout_LocalStore(t *testing.T) {
	s := NewAuthService(localStore(t), testLogger(t))
	require.NotPanics(t, s.Logout)
}

// ---- Message ----

func TestMessage(t *testing.T) {
	require.Equal(t, "Passwords don't match", Message(signup.ErrPasswordMismatch))
	require.Equal(t, "Full name is required", Message(&signup.RequiredFieldError{Field: "full name"}))
	require.Equal(t, MsgSessionEnded, Message(common.ErrTokenExpired))
	require.Equal(t, MsgNotLoggedIn, Message(client.ErrUnauthorized))
	require.Equal(t, "User not found", Message(credentials.ErrUserNotFound))
}
