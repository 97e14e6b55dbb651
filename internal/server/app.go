// Package server wires configuration, storage, services and transports into
// the PetSwap API process and runs it until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/petswap/internal/logging"
	"github.com/dmitrijs2005/petswap/internal/server/auth"
	"github.com/dmitrijs2005/petswap/internal/server/config"
	"github.com/dmitrijs2005/petswap/internal/server/httpapi"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petswap/internal/server/services"
	"github.com/dmitrijs2005/petswap/internal/server/storage"
	"github.com/dmitrijs2005/petswap/internal/telemetry"

	gs "github.com/dmitrijs2005/petswap/internal/server/grpc"
)

const (
	serviceName     = "petswap-api"
	shutdownTimeout = 10 * time.Second
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	handler         http.Handler
	health          *gs.HealthServer
	shutdownTracing telemetry.ShutdownFunc
}

// openDB is a seam for tests.
var openDB = repomanager.OpenPostgres

// NewApp validates c, connects to the database, applies migrations and builds
// the HTTP and gRPC transports.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if c.DevMode {
		logger.Warn(ctx, "development mode enabled")
	}

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, c.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		_ = shutdownTracing(ctx)
		return nil, err
	}
	app.shutdownTracing = shutdownTracing

	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens, err := auth.NewTokenManager([]byte(c.SecretKey), c.TokenValidity)
	if err != nil {
		return nil, fmt.Errorf("token manager init error: %w", err)
	}

	var presigner services.ImagePresigner
	if c.S3Enabled() {
		p, err := storage.NewS3Presigner(ctx, storage.Options{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			Expiry:       c.S3PresignExpiry,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		presigner = p
	} else {
		logger.Info(ctx, "S3 is not configured, image uploads are disabled")
	}

	handler := httpapi.NewRouter(httpapi.Deps{
		Logger:         logger.With("module", "http_api"),
		Verifier:       tokens,
		Users:          services.NewUserService(db, rm, tokens),
		Properties:     services.NewPropertyService(db, rm, presigner),
		Bookings:       services.NewBookingService(db, rm),
		AllowedOrigins: c.AllowedOrigins,
		RequestTimeout: c.RequestTimeout,
	})

	app := &App{config: c, logger: logger, db: db, handler: handler}
	if c.GRPCAddr != "" {
		app.health = gs.NewHealthServer(c.GRPCAddr, logger, db, c.HealthProbeInterval)
	}
	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

func (app *App) runHTTPServer(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       app.config.RequestTimeout,
		WriteTimeout:      app.config.RequestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// shuts everything down within shutdownTimeout.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.runHTTPServer(gctx)
	})

	if app.health != nil {
		g.Go(func() error {
			return app.health.Run(gctx)
		})
	}

	err := g.Wait()

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")

	return err
}

func (app *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if app.shutdownTracing != nil {
		if err := app.shutdownTracing(ctx); err != nil {
			app.logger.Error(ctx, "tracer shutdown error", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
}
