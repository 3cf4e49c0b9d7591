package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intellica/pkg/log"
	"intellica/pkg/page"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const defaultShutdownTimeout = 10 * time.Second

//go:embed web/index.html
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// StatusServer serves the Intellica status page.
type StatusServer struct {
	page            *page.Page
	echo            *echo.Echo
	version         string
	shutdownTimeout time.Duration
	tmpl            *template.Template
	now             func() time.Time
}

func NewStatusServer(statusPage *page.Page, version string, shutdownTimeout time.Duration) *StatusServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &StatusServer{
		page:            statusPage,
		echo:            echo.New(),
		version:         version,
		shutdownTimeout: shutdownTimeout,
		tmpl:            pageTemplate,
		now:             time.Now,
	}
}

// Start mounts the page, serves it on addr and blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func (srv *StatusServer) Start(addr string) error {
	srv.setupRoutes()
	srv.page.Mount(context.Background())

	go func() {
		log.Info().
			Str("addr", addr).
			Str("version", srv.version).
			Msg("Starting status page server")

		if err := srv.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return srv.Shutdown()
}

// Shutdown unmounts the page and stops the HTTP server.
func (srv *StatusServer) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	srv.page.Unmount()

	ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()

	if err := srv.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (srv *StatusServer) setupRoutes() {
	srv.echo.HideBanner = true
	srv.echo.HidePort = true

	srv.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogMethod:  true,
		LogURI:     true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Int("status", v.Status).
				Str("method", v.Method).
				Str("uri", v.URI).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	srv.echo.Use(middleware.Recover())

	srv.echo.GET("/", srv.servePage)
	srv.echo.GET("/api/status", srv.getStatus)
	srv.echo.GET("/healthz", srv.getHealth)
}
