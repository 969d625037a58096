package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohammad-safakhou/labchain/config"
	"github.com/mohammad-safakhou/labchain/internal/cache"
	"github.com/mohammad-safakhou/labchain/internal/protocol"
	srv "github.com/mohammad-safakhou/labchain/internal/server"
	"github.com/mohammad-safakhou/labchain/internal/telemetry"
	"github.com/mohammad-safakhou/labchain/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.json)")
	return serve
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger, closeLog := config.SetupLogger(cfg.Logging)
	defer func() { _ = closeLog() }()

	gen, err := provider.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	if provider.IsAvailable(gen) {
		logger.Info("model backend enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	} else {
		logger.Warn("no model backend configured, serving rule-based results only", "provider", cfg.LLM.Provider)
	}

	opts := []protocol.Option{protocol.WithLogger(logger)}

	var registry *prometheus.Registry
	if cfg.Telemetry.MetricsEnabled {
		registry = prometheus.NewRegistry()
		opts = append(opts, protocol.WithMetrics(telemetry.NewMetrics(registry)))
	}

	if cfg.Cache.Enabled {
		rc, err := cache.Dial(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", "addr", cfg.Cache.Redis.Addr(), "error", err)
		} else {
			defer func() { _ = rc.Close() }()
			opts = append(opts, protocol.WithCache(rc, cfg.LLM.Provider+"/"+cfg.LLM.Model))
			logger.Info("result cache enabled", "addr", cfg.Cache.Redis.Addr(), "ttl", cfg.Cache.TTL)
		}
	}

	svc := protocol.NewService(gen, opts...)
	var gatherer prometheus.Gatherer
	if registry != nil {
		gatherer = registry
	}
	e := srv.New(cfg.Server, svc, logger, gatherer)
	return srv.Run(ctx, e, cfg.Server.Address, logger)
}
