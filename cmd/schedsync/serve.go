package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/config"
	schedhttp "github.com/sagarc03/schedsync/http"
	"github.com/sagarc03/schedsync/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the schedsync HTTP gateway. When metrics.address is set a second
listener serves /metrics, /livez and /readyz.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port (env: SCHEDSYNC_SERVER_PORT)")
	serveCmd.Flags().String("metrics-addr", "", "admin listener address, empty disables it (env: SCHEDSYNC_METRICS_ADDRESS)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	slog.Info("opened store", "type", cfg.Storage.Type)

	var (
		m           *metrics.Metrics
		middlewares []func(http.Handler) http.Handler
	)
	if cfg.Metrics.Address != "" {
		m = metrics.New()
		store = metrics.InstrumentStore(store, m)
		middlewares = append(middlewares, m.Middleware)
	}

	service := schedsync.NewService(store)

	handlerConfig := schedhttp.HandlerConfig{
		CORS:          cfg.CORS,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		Middlewares:   middlewares,
	}
	handler := schedhttp.NewHandler(&handlerConfig, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	servers := []*http.Server{{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}}

	if m != nil {
		admin := &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           m.AdminRouter(store),
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, admin)

		go func() {
			slog.Info("starting admin server", "addr", admin.Addr)
			if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("admin server error", "err", err)
			}
		}()
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				slog.Error("server shutdown error", "addr", s.Addr, "err", err)
			}
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "storage", cfg.Storage.Type)
	if err := servers[0].ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
