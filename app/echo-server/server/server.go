package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"olistInsights/app/bootstrap"
	"olistInsights/app/echo-server/metrics"
	"olistInsights/app/echo-server/router"
	"olistInsights/internal/middleware"
	"olistInsights/internal/rest"
	"olistInsights/pkg/config"
	"olistInsights/pkg/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// New builds the echo instance serving the report API.
func New(cfg *config.Config, reportService rest.ReportService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestMetrics(metrics.RequestDuration))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	reportHandler := rest.NewReportHandler(reportService, cfg.Server.RequestTimeout)

	var authRequired echo.MiddlewareFunc
	if cfg.JWT.SecretKey != "" {
		authRequired = middleware.AuthMiddleware(cfg.JWT.SecretKey)
	} else {
		logger.Warn("JWT_SECRET not set, report API is unauthenticated")
	}

	router.SetupSystemRoutes(e, reportHandler)
	api := e.Group("/api/v1")
	router.SetupReportRoutes(api, reportHandler, authRequired)

	return e
}

// Serve loads the report source named by opts and serves it until ctx is
// cancelled.
func Serve(ctx context.Context, cfg *config.Config, opts bootstrap.SourceOptions) error {
	opened, err := bootstrap.OpenSource(ctx, cfg, opts)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	defer opened.Close()

	reportService, closeCache := bootstrap.NewReportService(ctx, cfg, opened.Source)
	defer closeCache()

	return Run(ctx, cfg, reportService)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, reportService rest.ReportService) error {
	e := New(cfg, reportService)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
