package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/resumeguide/internal/adapters/http/api"
	"github.com/okian/resumeguide/internal/adapters/http/swagger"
	"github.com/okian/resumeguide/pkg/logger"
	"github.com/okian/resumeguide/pkg/metrics"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config addr)")
	return cmd
}

// newHandler builds the routed HTTP handler for the service.
func (c *cli) newHandler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	// API docs at /api-docs and /openapi.yaml
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(c.svc, c.svc,
		api.WithMaxBodyBytes(c.cfg.MaxBodyBytes),
		api.WithMaxUploadBytes(c.cfg.MaxUploadBytes),
		api.WithLogger(logger.Named("http")),
	)
	apiServer.Register(ctx, mux)
	return mux
}

func (c *cli) serve(ctx context.Context) error {
	if err := c.svc.Start(ctx); err != nil {
		return err
	}
	defer c.svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           c.newHandler(ctx),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		c.log.Info(ctx, "starting HTTP server", logger.String("addr", c.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case err, ok := <-errCh:
		if ok {
			c.log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	c.log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	c.log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater updates runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
