package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/probelabs/llm-probe/config"
	"github.com/probelabs/llm-probe/handlers"
	"github.com/probelabs/llm-probe/internal/observability"
	"github.com/probelabs/llm-probe/routes"
	"github.com/probelabs/llm-probe/services/selector"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hello-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sel := selector.New(cfg.Selector(), logger)

	opts := routes.Options{}
	if cfg.Observability.MetricsEnabled {
		registry := prometheus.NewRegistry()
		sel = sel.WithMetrics(observability.NewMetrics(registry))
		opts.MetricsRegistry = registry
	}

	router := routes.SetupRoutes(handlers.New(sel, logger), logger, opts)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hello-api listening",
			zap.String("addr", srv.Addr),
			zap.Bool("metrics", cfg.Observability.MetricsEnabled),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
