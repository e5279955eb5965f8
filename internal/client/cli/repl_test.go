package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Forgot(ctx context.Context) error {
	f.calls = append(f.calls, "forgot")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) Strength(ctx context.Context) error {
	f.calls = append(f.calls, "strength")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Backup(ctx context.Context) error {
	f.calls = append(f.calls, "backup")
	return nil
}
func (f *fakeExec) Restore(ctx context.Context, key string) error {
	f.calls = append(f.calls, "restore")
	f.arg = key
	return nil
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.NewReader(strings.Join([]string{
		"",
		"help",
		"login",
		"help",
		"profile",
		"strength",
		"backup",
		"restore 01HZX.json",
		"logout",
		"register",
		"signup",
		"forgot",
		"bogus",
		"exit",
		"login",
	}, "\n"))

	var out bytes.Buffer
	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "(local)" }, bufio.NewReader(input), &out)

	require.Equal(t, []string{
		"login", "profile", "strength", "backup", "restore", "logout", "signup", "signup", "forgot",
	}, f.calls)
	require.Equal(t, "01HZX.json", f.arg)

	got := out.String()
	require.Contains(t, got, "Available commands: login, signup")
	require.Contains(t, got, "Available commands: profile")
	require.Contains(t, got, "Unknown command: bogus")
	require.Contains(t, got, "mrtrade (local) > ")
	require.True(t, strings.HasSuffix(got, "Bye!\n"))
}

func TestRunREPL_RestoreWithoutKey(t *testing.T) {
	f := &fakeExec{arg: "unset"}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("restore\nquit\n")), io.Discard)

	require.Equal(t, []string{"restore"}, f.calls)
	require.Empty(t, f.arg)
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("login")), io.Discard)
	require.Equal(t, []string{"login"}, f.calls)
}

func TestRunREPL_PrintsThroughSeam(t *testing.T) {
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var writers []io.Writer
	printlnFn = func(w io.Writer, a ...any) (int, error) {
		writers = append(writers, w)
		return fmt.Fprintln(w, a...)
	}

	var out bytes.Buffer
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("bogus\nexit\n")), &out)

	require.NotEmpty(t, writers)
	for _, w := range writers {
		require.Same(t, &out, w)
	}
}

// Prompts inside a command read from the same input as the REPL, so
// piped answers reach the handler instead of being run as commands.
func TestRoot_PromptsShareInput(t *testing.T) {
	a, out := newTestApp(t)
	a.reader = bufio.NewReader(strings.NewReader("forgot\nnobody@x.com\nforgot\njohn@example.com\nexit\n"))

	signupJohn(t, a)
	a.authService.Logout()
	getSimpleText, getPassword = GetSimpleText, GetPassword
	out.Reset()

	a.Root(context.Background())

	got := out.String()
	require.Contains(t, got, "Email not found in our system")
	require.Contains(t, got, "Reset link sent to john@example.com")
	require.NotContains(t, got, "Unknown command")
	require.True(t, strings.HasSuffix(got, "Bye!\n"))
}
