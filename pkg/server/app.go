package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dotan-Peleh/currency-convertor/internal/usecase"
	pkgch "github.com/Dotan-Peleh/currency-convertor/pkg/clickhouse"
	"github.com/Dotan-Peleh/currency-convertor/pkg/config"
	xhttp "github.com/Dotan-Peleh/currency-convertor/pkg/http"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	converter  *usecase.PriceConverter
	chClient   *pkgch.Client
	httpServer *xhttp.Server
	handler    xhttp.Handler
	logger     *applogger.Logger
	closers    []func() error
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	converter *usecase.PriceConverter,
	chClient *pkgch.Client,
	handler xhttp.Handler,
	logger *applogger.Logger,
) *App {
	return &App{
		cfg:       cfg,
		converter: converter,
		chClient:  chClient,
		handler:   handler,
		logger:    logger,
	}
}

// AddCloser registers a resource to close on shutdown (kafka producer,
// redis client). Closers run in registration order.
func (a *App) AddCloser(fn func() error) { a.closers = append(a.closers, fn) }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	// First run happens immediately so a fresh deployment publishes a
	// matrix without waiting for the interval.
	go a.runLoop(ctx)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// runLoop executes the startup run and then re-runs on the configured
// interval. A failed run is logged and retried at the next tick.
func (a *App) runLoop(ctx context.Context) {
	if _, err := a.converter.RunOnce(ctx); err != nil {
		a.logger.Error("startup conversion run failed", applogger.Error(err))
	}

	if a.cfg.Pricing.RunInterval <= 0 {
		return
	}
	ticker := time.NewTicker(a.cfg.Pricing.RunInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.converter.RunOnce(ctx); err != nil {
				a.logger.Error("scheduled conversion run failed", applogger.Error(err))
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.logger.Warn("resource close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
