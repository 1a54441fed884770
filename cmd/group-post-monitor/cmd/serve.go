package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/group-post-monitor/api/openapi"
	"github.com/donaldgifford/group-post-monitor/internal/api/handlers"
	"github.com/donaldgifford/group-post-monitor/internal/api/middleware"
	"github.com/donaldgifford/group-post-monitor/internal/config"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: "Serves the control API, health probes, and metrics. Monitoring starts when a " +
			"client posts a configuration, or immediately when monitor.autostart is set.",
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	e := newServer(a)

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("starting server", "addr", addr)
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx := cmd.Context()
	if a.cfg.Monitor.Autostart {
		if _, err := a.ctl.Start(ctx, a.cfg.Settings()); err != nil {
			a.log.Error("autostart failed", "error", err)
		}
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			a.log.Error("server error", "error", err)
			stopMonitor(a)
			return fmt.Errorf("serving: %w", err)
		}
	}

	a.log.Info("shutting down server")
	stopMonitor(a)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	a.log.Info("server stopped")
	return nil
}

// newServer builds the echo instance with middleware, probes, metrics, and
// the Huma control API.
func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.log))
	e.Use(middleware.RequestLog(a.log))
	e.Use(middleware.Metrics())

	credentialsFile := a.cfg.Graph.CredentialsFile
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(func(context.Context) error {
		_, err := config.LoadAccessToken(credentialsFile)
		return err
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	api := humaecho.New(e, huma.DefaultConfig("Group Post Monitor API", Version))
	handlers.RegisterMonitorRoutes(api, handlers.NewMonitorHandler(a.ctl))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(a.limiter))

	return e
}

func stopMonitor(a *app) {
	if !a.ctl.Running() {
		return
	}
	if _, err := a.ctl.Stop(); err != nil {
		a.log.Warn("stopping monitor", "error", err)
	}
}
