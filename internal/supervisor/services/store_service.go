// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GCRunner reclaims storage space.
//
// Satisfied by *store.RecordStore.
type GCRunner interface {
	RunGC(ctx context.Context) error
}

// StoreMaintenanceService runs value log garbage collection on the record
// store at a fixed interval.
//
// A failed GC run is logged and retried on the next tick; it never stops
// the service, since the store stays usable without it.
//
// Example usage:
//
//	svc := services.NewStoreMaintenanceService(recordStore, 10*time.Minute, logger)
//	tree.AddDataService(svc)
type StoreMaintenanceService struct {
	store    GCRunner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreMaintenanceService creates a new store maintenance service.
// A non-positive interval defaults to 10 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreMaintenanceService(store GCRunner, interval time.Duration, logger zerolog.Logger) *StoreMaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreMaintenanceService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "store-maintenance").Logger(),
		name:     "store-maintenance",
	}
}

// Serve implements suture.Service.
func (s *StoreMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("store maintenance started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("value log GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("value log GC complete")
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *StoreMaintenanceService) String() string {
	return s.name
}
