// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

// Package services provides Suture service wrappers for Snapgraph components.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/snapgraph/internal/discovery"
)

// ErrRefreshThrottled is returned by Trigger when on-demand refreshes arrive
// faster than the configured refresh interval allows.
var ErrRefreshThrottled = errors.New("cluster refresh throttled")

// ClusterEngine is the clustering side of *discovery.Engine.
type ClusterEngine interface {
	FindClusters(ctx context.Context, records []discovery.Record) ([]discovery.ContentCluster, error)
}

// CorpusProvider supplies the records to cluster. Satisfied by
// *provider.Resilient, which degrades to an empty corpus on failure.
type CorpusProvider interface {
	Corpus(ctx context.Context) []discovery.Record
}

// AnalysisServiceConfig holds configuration for the analysis service.
type AnalysisServiceConfig struct {
	// ClusterOnStartup runs a clustering pass when the service starts.
	ClusterOnStartup bool

	// ClusterInterval is how often the corpus is re-clustered.
	// Default: 15m
	ClusterInterval time.Duration

	// RunTimeout bounds a single clustering pass.
	// Default: 5m
	RunTimeout time.Duration

	// RefreshInterval is the minimum spacing of on-demand refreshes.
	// Zero disables throttling.
	RefreshInterval time.Duration

	// RefreshBurst is the number of refreshes allowed back to back.
	// Default: 1
	RefreshBurst int
}

// AnalysisService keeps the engine's content relationships current. It
// clusters the whole corpus on a schedule and on demand via Trigger.
type AnalysisService struct {
	engine  ClusterEngine
	corpus  CorpusProvider
	config  AnalysisServiceConfig
	limiter *rate.Limiter
	trigger chan struct{}
	logger  zerolog.Logger
	name    string
}

// NewAnalysisService creates a new analysis service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAnalysisService(engine ClusterEngine, corpus CorpusProvider, cfg AnalysisServiceConfig, logger zerolog.Logger) *AnalysisService {
	if cfg.ClusterInterval <= 0 {
		cfg.ClusterInterval = 15 * time.Minute
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	if cfg.RefreshBurst <= 0 {
		cfg.RefreshBurst = 1
	}

	limit := rate.Inf
	if cfg.RefreshInterval > 0 {
		limit = rate.Every(cfg.RefreshInterval)
	}

	return &AnalysisService{
		engine:  engine,
		corpus:  corpus,
		config:  cfg,
		limiter: rate.NewLimiter(limit, cfg.RefreshBurst),
		trigger: make(chan struct{}, 1),
		logger:  logger.With().Str("service", "analysis").Logger(),
		name:    "analysis-service",
	}
}

// Trigger requests a clustering pass. It never blocks: a request made while
// another is pending is merged into it. Requests beyond the refresh rate
// return ErrRefreshThrottled.
func (s *AnalysisService) Trigger() error {
	if !s.limiter.Allow() {
		return ErrRefreshThrottled
	}
	select {
	case s.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Serve implements suture.Service.
func (s *AnalysisService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("cluster_on_startup", s.config.ClusterOnStartup).
		Dur("cluster_interval", s.config.ClusterInterval).
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("analysis service starting")

	if s.config.ClusterOnStartup {
		s.cluster(ctx, "startup")
	}

	ticker := time.NewTicker(s.config.ClusterInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("analysis service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.cluster(ctx, "scheduled")

		case <-s.trigger:
			s.cluster(ctx, "on_demand")
		}
	}
}

// cluster runs one clustering pass. Failures are logged; the next tick retries.
func (s *AnalysisService) cluster(ctx context.Context, reason string) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	records := s.corpus.Corpus(runCtx)

	clusters, err := s.engine.FindClusters(runCtx, records)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("reason", reason).Msg("clustering pass failed")
		return
	}

	s.logger.Info().
		Str("reason", reason).
		Int("records", len(records)).
		Int("clusters", len(clusters)).
		Dur("duration", time.Since(start)).
		Msg("clustering pass complete")
}

// String returns the service name for logging.
func (s *AnalysisService) String() string {
	return s.name
}
