package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/mrtrade/internal/client/services"
	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/accounts"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	l, err := logging.New(io.Discard, "text", "debug")
	require.NoError(t, err)
	return l
}

// newTestApp returns an App over a fresh local JSON store, writing user
// output to the returned buffer.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	logger := testLogger(t)

	repo, err := accounts.OpenJSONFile(context.Background(), filepath.Join(t.TempDir(), "users_db.json"), accounts.LoadPolicyFail, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	var out bytes.Buffer
	return &App{
		logger:      logger,
		authService: services.NewAuthService(credentials.NewStore(repo, nil, logger), logger),
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         &out,
	}, &out
}

// scriptInputs feeds texts and passwords, in order, to the prompts. An
// exhausted script answers io.EOF.
func scriptInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func signupJohn(t *testing.T, a *App) {
	t.Helper()
	scriptInputs(t,
		[]string{"John Doe", "johnd", "john@example.com", "+371 2000", "Latvia"},
		[]string{"Secret#123", "Secret#123"})
	require.NoError(t, a.Signup(context.Background()))
}
