// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/snapgraph/internal/api"
	"github.com/tomtom215/snapgraph/internal/backup"
	"github.com/tomtom215/snapgraph/internal/config"
	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/events"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/provider"
	"github.com/tomtom215/snapgraph/internal/store"
	"github.com/tomtom215/snapgraph/internal/supervisor"
	"github.com/tomtom215/snapgraph/internal/supervisor/services"
	ws "github.com/tomtom215/snapgraph/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.Logging())
	logging.Info().Str("version", api.Version).Str("config", cfg.String()).Msg("Starting Snapgraph")

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Snapgraph stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential component wiring
func run(cfg *config.Config) error {
	recordStore, err := store.Open(store.Config{
		Path:       cfg.Store.Path,
		InMemory:   cfg.Store.InMemory,
		SyncWrites: cfg.Store.SyncWrites,
		GCRatio:    cfg.Store.GCRatio,
	}, logging.WithComponent("store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := recordStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing record store")
		}
	}()

	providerCfg := provider.DefaultConfig()
	providerCfg.MaxFailures = cfg.Analysis.BreakerMaxFailures
	providerCfg.Timeout = cfg.Analysis.BreakerTimeout
	records := provider.New(recordStore, providerCfg, logging.WithComponent("provider"))

	bus := events.NewBus(events.Config{
		Topic:      cfg.Events.Topic,
		BufferSize: cfg.Events.BufferSize,
	}, logging.WithComponent("events"))
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	engine, err := discovery.NewEngine(cfg.Discovery.Settings(), logging.WithComponent("discovery"), discovery.WithNotifier(bus))
	if err != nil {
		return err
	}
	if !cfg.Discovery.Enabled {
		logging.Warn().Msg("Content discovery is DISABLED (SNAPGRAPH_DISCOVERY_ENABLED=false)")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), cfg.Supervisor.TreeConfig())
	if err != nil {
		return err
	}

	wsHub := ws.NewHub()
	forwarder := ws.NewForwarder(bus, wsHub, logging.WithComponent("websocket"))

	analysis := services.NewAnalysisService(engine, records, services.AnalysisServiceConfig{
		ClusterOnStartup: cfg.Analysis.ClusterOnStartup,
		ClusterInterval:  cfg.Analysis.ClusterInterval,
		RunTimeout:       cfg.Analysis.RequestTimeout,
		RefreshInterval:  cfg.Analysis.RefreshInterval,
		RefreshBurst:     cfg.Analysis.RefreshBurst,
	}, logging.WithComponent("analysis"))

	handler := api.NewHandler(recordStore, records, engine, analysis, wsHub, api.HandlerConfig{
		RequestTimeout: cfg.Analysis.RequestTimeout,
		AllowedOrigins: cfg.Server.CORSOrigins,
	})

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Server.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Server.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Server.RateLimitDisabled
	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (SNAPGRAPH_DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Server.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS allows any origin (SNAPGRAPH_CORS_ORIGINS=*); set explicit origins in production")
			break
		}
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mwConfig).SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	tree.AddDataService(services.NewStoreMaintenanceService(recordStore, cfg.Store.GCInterval, logging.WithComponent("store")))
	tree.AddDataService(services.NewEventForwarderService(forwarder))
	if cfg.Backup.Enabled {
		backup.AppVersion = api.Version
		backups, err := backup.NewManager(cfg.Backup.ManagerConfig(), recordStore, logging.WithComponent("backup"))
		if err != nil {
			return fmt.Errorf("failed to create backup manager: %w", err)
		}
		tree.AddDataService(services.NewBackupService(backups, cfg.Backup.Interval, logging.WithComponent("backup")))
	}

	tree.AddAnalysisService(analysis)
	tree.AddAnalysisService(services.NewWebSocketHubService(wsHub))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	stop()
	if errors.Is(serveErr, context.Canceled) {
		serveErr = nil
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	return serveErr
}
