// Package server initializes and runs the custody server: it opens the
// metadata database, applies migrations, selects the blob store backend and
// starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/cryptopix/internal/logging"
	"github.com/dmitrijs2005/cryptopix/internal/server/api"
	"github.com/dmitrijs2005/cryptopix/internal/server/config"
	"github.com/dmitrijs2005/cryptopix/internal/server/db"
	objectsrepo "github.com/dmitrijs2005/cryptopix/internal/server/repositories/objects"
	usersrepo "github.com/dmitrijs2005/cryptopix/internal/server/repositories/users"
	"github.com/dmitrijs2005/cryptopix/internal/server/services"
	"github.com/dmitrijs2005/cryptopix/internal/server/storage"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	server  *api.Server
	cleanup []func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	app := &App{config: cfg, logger: logger}

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.cleanup = append(app.cleanup, conn.Close)

	if err := db.RunMigrations(ctx, conn); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	blobs, err := app.initBlobStore(ctx)
	if err != nil {
		return nil, err
	}

	objSvc := services.NewObjectService(objectsrepo.NewPostgresRepository(conn), blobs, logger)
	userSvc := services.NewUserService(usersrepo.NewPostgresRepository(conn), cfg.SecretKey, cfg.AccessTokenValidityDuration)

	app.server = api.NewServer(cfg.EndpointAddr, logger, objSvc, userSvc, cfg.SecretKey)

	return app, nil
}

func (app *App) initBlobStore(ctx context.Context) (storage.BlobStore, error) {
	switch app.config.BlobBackend {
	case config.BlobBackendS3:
		store, err := storage.NewS3Store(ctx, app.config)
		if err != nil {
			return nil, fmt.Errorf("s3 store init error: %w", err)
		}
		return store, nil
	case config.BlobBackendBolt:
		store, err := storage.OpenBoltStore(app.config.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("bolt store init error: %w", err)
		}
		app.cleanup = append(app.cleanup, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", app.config.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	for i := len(app.cleanup) - 1; i >= 0; i-- {
		if err := app.cleanup[i](); err != nil {
			app.logger.Warn(ctx, "cleanup error", "error", err.Error())
		}
	}
}
