// Package server wires the quiz server together: configuration, logging,
// the relational store and its migrations, the startup data sync and the
// gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/filex"
	"github.com/Tao1925/poc-web/internal/logging"
	"github.com/Tao1925/poc-web/internal/server/config"
	"github.com/Tao1925/poc-web/internal/server/datasync"
	"github.com/Tao1925/poc-web/internal/server/repositories/repomanager"

	gs "github.com/Tao1925/poc-web/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	dataSync *datasync.Service
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogLevel, c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if path := filex.SQLitePath(c.DatabaseDSN); c.DatabaseDriver == dbx.DriverSQLite && path != "" {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	ds := datasync.NewService(db, rm, c, logger.With("module", "data_sync"))

	return &App{config: c, logger: logger, db: db, dataSync: ds}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// SyncOnce reconciles the store with the configured document regardless of
// the enable flag.
func (app *App) SyncOnce(ctx context.Context) (*datasync.Result, error) {
	return app.dataSync.Run(ctx, app.config.DataSyncLocation)
}

// Run performs the startup data sync and then serves gRPC until ctx is
// cancelled or a termination signal arrives. A failed sync aborts startup.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	if _, err := app.dataSync.Startup(ctx); err != nil {
		return fmt.Errorf("startup data sync: %w", err)
	}

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)
	if err != nil {
		return err
	}

	return s.Run(ctx)
}

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}
