package cli

import (
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/mrtrade/internal/client/services"
	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/stretchr/testify/require"
)

func TestSignup_ThenLoginShowsProfile(t *testing.T) {
	a, out := newTestApp(t)
	signupJohn(t, a)

	require.Contains(t, out.String(), "Password strength: strong (100%)")
	require.Contains(t, out.String(), "User created successfully")
	require.False(t, a.isLoggedIn())

	out.Reset()
	scriptInputs(t, []string{" john@example.com "}, []string{"Secret#123"})
	require.NoError(t, a.Login(context.Background()))

	got := out.String()
	require.Contains(t, got, "Login successful")
	require.Contains(t, got, "Welcome to MR Trade!")
	require.Contains(t, got, "Full name: John Doe")
	require.Contains(t, got, "Country:   Latvia")
	require.NotContains(t, got, "Secret#123")
	require.True(t, a.isLoggedIn())
	require.Equal(t, "(john@example.com local)", a.getStatus())
}

func TestSignup_RetriesInvalidSteps(t *testing.T) {
	a, out := newTestApp(t)
	scriptInputs(t,
		[]string{
			"  ", "johnd", // full name missing
			"John Doe", "johnd",
			"back", // to step one
			"John Doe", "johnd",
			"john@example.com", "+371 2000", "",
		},
		[]string{"Secret#123", "Secret#124", "Secret#123", "Secret#123"})

	require.NoError(t, a.Signup(context.Background()))

	got := out.String()
	require.Contains(t, got, "Full name is required")
	require.Contains(t, got, "Passwords don't match")
	require.Contains(t, got, "User created successfully")

	ok, err := a.authService.ForgotPassword(context.Background(), "john@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, ok)
}

func TestSignup_Duplicate(t *testing.T) {
	a, out := newTestApp(t)
	signupJohn(t, a)

	out.Reset()
	scriptInputs(t,
		[]string{"Jane Doe", "jane", "john@example.com", "+371 3000", ""},
		[]string{"Another#1", "Another#1"})

	err := a.Signup(context.Background())
	require.ErrorIs(t, err, credentials.ErrUserAlreadyExists)
	require.Contains(t, out.String(), "User already exists")
}

func TestSignup_InputClosed(t *testing.T) {
	a, _ := newTestApp(t)
	scriptInputs(t, []string{"John Doe", "johnd", "john@example.com"}, nil)

	require.ErrorIs(t, a.Signup(context.Background()), io.EOF)
}

func TestLogin_Failures(t *testing.T) {
	a, out := newTestApp(t)
	signupJohn(t, a)

	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{name: "wrong password", email: "john@example.com", password: "nope", want: "Incorrect password"},
		{name: "unknown user", email: "jane@example.com", password: "x", want: "User not found"},
		{name: "empty", email: " ", password: "", want: "Please fill all fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			scriptInputs(t, []string{tt.email}, []string{tt.password})
			require.Error(t, a.Login(context.Background()))
			require.Contains(t, out.String(), tt.want)
			require.False(t, a.isLoggedIn())
		})
	}
}

func TestForgot(t *testing.T) {
	a, out := newTestApp(t)
	signupJohn(t, a)

	out.Reset()
	scriptInputs(t, []string{"jane@example.com"}, nil)
	require.ErrorIs(t, a.Forgot(context.Background()), services.ErrEmailUnknown)
	require.Contains(t, out.String(), "Email not found in our system")

	out.Reset()
	scriptInputs(t, []string{"john@example.com"}, nil)
	require.NoError(t, a.Forgot(context.Background()))
	require.Contains(t, out.String(), "Reset link sent to john@example.com")
}

func TestProfileAndLogout(t *testing.T) {
	a, out := newTestApp(t)

	require.ErrorIs(t, a.Profile(context.Background()), services.ErrNotLoggedIn)
	require.Contains(t, out.String(), "Please log in first")

	signupJohn(t, a)
	scriptInputs(t, []string{"john@example.com"}, []string{"Secret#123"})
	require.NoError(t, a.Login(context.Background()))

	out.Reset()
	require.NoError(t, a.Logout(context.Background()))
	require.Contains(t, out.String(), "Logged out")
	require.False(t, a.isLoggedIn())
	require.Equal(t, "(local)", a.getStatus())
}

func TestStrength(t *testing.T) {
	a, out := newTestApp(t)

	scriptInputs(t, nil, []string{"abc"})
	require.NoError(t, a.Strength(context.Background()))
	require.Contains(t, out.String(), "Password strength: weak (25%)")

	scriptInputs(t, nil, nil)
	require.ErrorIs(t, a.Strength(context.Background()), io.EOF)
}
