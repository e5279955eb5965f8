// Package server wires the credential store to its network surfaces.
// It opens the configured account backend, then runs the gRPC service and
// the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mrtrade/internal/credentials"
	"github.com/dmitrijs2005/mrtrade/internal/cryptox"
	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/accounts"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/repomanager"
	"github.com/dmitrijs2005/mrtrade/internal/server/auth"
	"github.com/dmitrijs2005/mrtrade/internal/server/config"
	"github.com/dmitrijs2005/mrtrade/internal/server/httpapi"

	gs "github.com/dmitrijs2005/mrtrade/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repo   accounts.Repository
	store  *credentials.Store
}

// NewApp opens the account backend described by c. Logs go to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.New(out, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	hasher, err := cryptox.NewHasher(c.HashScheme)
	if err != nil {
		return nil, err
	}

	repo, err := repomanager.Open(ctx, c.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	store := credentials.NewStore(repo, hasher, logger)

	return &App{config: c, logger: logger, repo: repo, store: store}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) issueToken(email string) (string, error) {
	return auth.GenerateToken(email, []byte(app.config.SecretKey), app.config.AccessTokenTTL)
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
// The account backend is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Store.Backend)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.store, app.config.SecretKey, app.config.AccessTokenTTL)
		return s.Run(ctx)
	})

	if app.config.HTTPAddr != "" {
		g.Go(func() error {
			router := httpapi.NewRouter(app.store, app.issueToken, app.logger)
			return httpapi.NewServer(app.config.HTTPAddr, router, app.logger).Run(ctx)
		})
	}

	err := g.Wait()

	if cerr := app.repo.Close(); cerr != nil {
		app.logger.Error(ctx, "close store", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
