package server

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mrtrade/internal/server/auth"
	"github.com/dmitrijs2005/mrtrade/internal/server/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.Store.FilePath = filepath.Join(t.TempDir(), "users_db.json")
	c.GRPCAddr = "127.0.0.1:0"
	c.HTTPAddr = "127.0.0.1:0"
	c.LogFormat = "text"
	return c
}

func TestNewApp_BadSettings(t *testing.T) {
	var out bytes.Buffer

	c := testConfig(t)
	c.LogLevel = "loud"
	_, err := NewApp(context.Background(), c, &out)
	require.Error(t, err)

	c = testConfig(t)
	c.HashScheme = "md5"
	_, err = NewApp(context.Background(), c, &out)
	require.Error(t, err)

	c = testConfig(t)
	c.Store.Backend = "tape"
	_, err = NewApp(context.Background(), c, &out)
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(t), &out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, out.String(), "App stopped")
}

func TestApp_RunFailsOnBusyPort(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	c := testConfig(t)
	c.GRPCAddr = lis.Addr().String()
	c.HTTPAddr = ""

	var out bytes.Buffer
	app, err := NewApp(context.Background(), c, &out)
	require.NoError(t, err)

	require.Error(t, app.Run(context.Background()))
}

func TestApp_IssueToken(t *testing.T) {
	var out bytes.Buffer
	c := testConfig(t)
	app, err := NewApp(context.Background(), c, &out)
	require.NoError(t, err)

	tok, err := app.issueToken("john@example.com")
	require.NoError(t, err)

	email, err := auth.GetEmailFromToken(tok, []byte(c.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", email)
}
