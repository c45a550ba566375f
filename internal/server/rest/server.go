package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/warrantyguard/internal/logging"
	"github.com/dmitrijs2005/warrantyguard/internal/server/metrics"
	"github.com/dmitrijs2005/warrantyguard/internal/server/services"
)

type HTTPServer struct {
	address         string
	echo            *echo.Echo
	backups         *services.BackupService
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, bs *services.BackupService, m *metrics.Metrics, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		backups:         bs,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestIDMiddleware(s.logger))
	e.Use(requestLoggerMiddleware)
	e.Use(m.Middleware)
	e.Use(middleware.CORS())

	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/backup", s.Backup)
	api.PUT("/backup", s.Backup)
	api.GET("/restore/:userId", s.Restore)

	s.echo = e
	return s
}

// Handler returns the routed echo instance, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
