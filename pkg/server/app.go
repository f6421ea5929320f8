package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"QuantLab/internal/scheduler"
	"QuantLab/pkg/config"
	xhttp "QuantLab/pkg/http"
	"QuantLab/pkg/http/middleware"
	applogger "QuantLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	warmer     *scheduler.Warmer
	httpServer *xhttp.Server
	closers    []io.Closer
}

// New creates a new App instance with all dependencies. warmer may be nil.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, warmer *scheduler.Warmer) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		warmer:  warmer,
	}
}

// AddCloser registers an infrastructure client closed on shutdown.
func (a *App) AddCloser(c io.Closer) {
	if c != nil {
		a.closers = append(a.closers, c)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mw := []echo.MiddlewareFunc{
		echo.WrapMiddleware(middleware.Metrics(a.logger, 500*time.Millisecond)),
	}
	if a.cfg.Auth.JWTSecret != "" {
		mw = append(mw, middleware.RoleGate(a.cfg.Auth.JWTSecret))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
		xhttp.WithMiddleware(mw...),
	)

	if a.warmer != nil {
		if err := a.warmer.Start(); err != nil {
			a.logger.Error("warmer start error", applogger.Error(err))
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.warmer != nil {
		a.warmer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
