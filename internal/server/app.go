// Package server initializes and runs the backup server: it picks the
// storage backend, wires the backup service into the HTTP API and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/dmitrijs2005/warrantyguard/internal/logging"
	"github.com/dmitrijs2005/warrantyguard/internal/server/config"
	"github.com/dmitrijs2005/warrantyguard/internal/server/metrics"
	"github.com/dmitrijs2005/warrantyguard/internal/server/repositories/backups"
	"github.com/dmitrijs2005/warrantyguard/internal/server/rest"
	"github.com/dmitrijs2005/warrantyguard/internal/server/services"
	"github.com/dmitrijs2005/warrantyguard/internal/server/shared/db"
)

const metricsPrefix = "warrantyguard"

type App struct {
	config        *config.Config
	zap           *zap.Logger
	logger        logging.Logger
	metrics       *metrics.Metrics
	db            *sql.DB
	backupService *services.BackupService
}

func NewApp(c *config.Config) (*App, error) {

	zl, err := logging.NewZap(c.Env, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	app := &App{config: c, zap: zl, logger: logger, metrics: metrics.New(metricsPrefix)}

	repo, err := app.newRepository(context.Background())
	if err != nil {
		_ = zl.Sync()
		return nil, err
	}

	app.backupService = services.NewBackupService(repo, app.metrics, logger.With("module", "backups"))
	return app, nil
}

// newRepository builds the document store selected by config.Storage.
func (app *App) newRepository(ctx context.Context) (backups.Repository, error) {
	switch app.config.Storage {
	case config.StorageFile:
		repo, err := backups.NewFileRepository(app.config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("file storage init error: %w", err)
		}
		return repo, nil

	case config.StorageS3:
		client, err := backups.NewS3Client(ctx, backups.S3Options{
			AccessKey:    app.config.S3RootUser,
			SecretKey:    app.config.S3RootPassword,
			Region:       app.config.S3Region,
			BaseEndpoint: app.config.S3BaseEndpoint,
			Bucket:       app.config.S3Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 storage init error: %w", err)
		}
		return backups.NewS3Repository(client, app.config.S3Bucket), nil

	case config.StoragePostgres:
		conn, err := db.OpenPostgres(ctx, app.config.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = conn
		return backups.NewPostgresRepository(conn), nil

	default:
		return nil, fmt.Errorf("unknown storage %q (want file, s3 or postgres)", app.config.Storage)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewHTTPServer(app.config.HTTPAddress, app.logger, app.backupService, app.metrics, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage, "address", app.config.HTTPAddress)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
}

func (app *App) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
	_ = app.zap.Sync()
}
