package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/reviewsense"
	"github.com/tsawler/reviewsense/internal/httpserver"
	"github.com/tsawler/reviewsense/internal/metrics"
	"github.com/tsawler/reviewsense/internal/version"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func runServe(cmdCtx context.Context, ctx *commandContext) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := ctx.logger(nil)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	info := version.Get()
	logger.Info("Starting reviewsense", "version", info.Version, "commit", info.Commit)

	registry := metrics.NewRegistry()
	inference := metrics.NewInferenceMetrics(registry)

	artifacts, err := ctx.loadArtifacts(logger)
	if err != nil {
		return err
	}
	inference.SetAvailability(artifacts.Availability)
	if !artifacts.Availability.Ready() {
		logger.Warn("Model artifacts unavailable, serving fallback heuristic", "model_dir", cfg.ModelDir)
	}

	analyzer, err := ctx.newAnalyzer(artifacts, logger, reviewsense.WithRecorder(inference))
	if err != nil {
		return err
	}
	inference.ObserveBreakerState(analyzer.BreakerState())

	srv := httpserver.NewServer(cfg, analyzer,
		httpserver.WithLogger(logger),
		httpserver.WithClock(ctx.clock),
		httpserver.WithRegistry(registry),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-signalCtx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout())
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
