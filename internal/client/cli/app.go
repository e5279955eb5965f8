package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mrtrade/internal/client/client"
	"github.com/dmitrijs2005/mrtrade/internal/client/config"
	"github.com/dmitrijs2005/mrtrade/internal/client/services"
	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/cryptox"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
	"github.com/dmitrijs2005/mrtrade/internal/snapshot"
)

// SnapshotService is the part of snapshot.Service the CLI uses.
type SnapshotService interface {
	Backup(ctx context.Context) (string, int, error)
	Restore(ctx context.Context, key string) (int, int, error)
	List(ctx context.Context) ([]snapshot.Info, error)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService services.AuthService
	snapshots   SnapshotService
	closers     []func() error
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the credential store. With a server address configured the
// store is remote and snapshots are unavailable; otherwise the local
// backend is opened and snapshots go to the configured bucket.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	if c.Remote() {
		apiClient, err := client.NewAccountClient(c.ServerAddress)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", c.ServerAddress, err)
		}
		app.closers = append(app.closers, apiClient.Close)
		app.authService = services.NewAuthService(apiClient, logger)
		return app, nil
	}

	hasher, err := cryptox.NewHasher(c.HashScheme)
	if err != nil {
		return nil, err
	}

	repo, err := repomanager.Open(ctx, c.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.closers = append(app.closers, repo.Close)
	app.authService = services.NewAuthService(credentials.NewStore(repo, hasher, logger), logger)

	s3c, err := snapshot.NewS3Client(ctx, c.Snapshot)
	if err != nil {
		logger.Warn(ctx, "snapshots disabled", "error", err)
	} else {
		app.snapshots = snapshot.NewService(repo, s3c, c.Snapshot, logger)
	}

	return app, nil
}

// Run starts the REPL and releases the store when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error(context.Background(), "close", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentUser() != ""
}
