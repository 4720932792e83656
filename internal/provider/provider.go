// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package provider

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/metrics"
	"github.com/tomtom215/snapgraph/internal/store"
)

// Fallback reasons reported to provider_fallbacks_total.
const (
	ReasonError       = "error"
	ReasonCircuitOpen = "circuit_open"
)

// Config configures the circuit breaker around a RecordProvider.
type Config struct {
	// Name labels the breaker in logs and metrics.
	// Default: "record-provider"
	Name string

	// MaxFailures is the number of consecutive failures that opens the circuit.
	// Default: 5
	MaxFailures uint32

	// Timeout is how long the circuit stays open before a trial request.
	// Default: 30s
	Timeout time.Duration

	// HalfOpenRequests is the number of trial requests allowed while half-open.
	// Default: 1
	HalfOpenRequests uint32
}

// DefaultConfig returns the default breaker configuration.
func DefaultConfig() Config {
	return Config{
		Name:             "record-provider",
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenRequests: 1,
	}
}

// Resilient wraps a discovery.RecordProvider with a circuit breaker.
//
// Corpus reads degrade to an empty pool: a recommendation cycle over no
// candidates yields an empty result rather than an error. Source lookups
// still fail, since there is nothing to analyse without the source record.
//
// The breaker uses wall-clock time for its open timeout.
type Resilient struct {
	inner  discovery.RecordProvider
	cb     *gobreaker.CircuitBreaker[[]discovery.Record]
	name   string
	logger zerolog.Logger
}

var _ discovery.RecordProvider = (*Resilient)(nil)

// New wraps inner with a circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(inner discovery.RecordProvider, cfg Config, logger zerolog.Logger) *Resilient {
	def := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = def.MaxFailures
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = def.HalfOpenRequests
	}

	r := &Resilient{
		inner:  inner,
		name:   cfg.Name,
		logger: logger.With().Str("component", "provider").Str("breaker", cfg.Name).Logger(),
	}

	metrics.SetBreakerState(cfg.Name, stateValue(gobreaker.StateClosed))

	r.cb = gobreaker.NewCircuitBreaker[[]discovery.Record](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.SetBreakerState(name, stateValue(to))
		},
	})

	return r
}

// isSuccessful keeps caller-side outcomes from tripping the breaker: a
// cancelled request or a missing record says nothing about provider health.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, store.ErrRecordNotFound)
}

// State returns the breaker state.
func (r *Resilient) State() gobreaker.State {
	return r.cb.State()
}

// GetRecord fetches one record through the breaker.
func (r *Resilient) GetRecord(ctx context.Context, id string) (discovery.Record, error) {
	out, err := r.cb.Execute(func() ([]discovery.Record, error) {
		rec, err := r.inner.GetRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		return []discovery.Record{rec}, nil
	})
	if err != nil {
		return discovery.Record{}, err
	}
	return out[0], nil
}

// ListRecords fetches the corpus through the breaker.
func (r *Resilient) ListRecords(ctx context.Context) ([]discovery.Record, error) {
	return r.cb.Execute(func() ([]discovery.Record, error) {
		return r.inner.ListRecords(ctx)
	})
}

// Source returns the record to analyse. Errors are returned unchanged,
// including store.ErrRecordNotFound and gobreaker.ErrOpenState.
func (r *Resilient) Source(ctx context.Context, id string) (discovery.Record, error) {
	return r.GetRecord(ctx, id)
}

// Corpus returns every record, or an empty pool if the provider fails.
func (r *Resilient) Corpus(ctx context.Context) []discovery.Record {
	records, err := r.ListRecords(ctx)
	if err != nil {
		r.fallback(ctx, err)
		return []discovery.Record{}
	}
	return records
}

// CandidatePool returns every record except sourceID, or an empty pool if
// the provider fails.
func (r *Resilient) CandidatePool(ctx context.Context, sourceID string) []discovery.Record {
	records := r.Corpus(ctx)
	pool := make([]discovery.Record, 0, len(records))
	for i := range records {
		if records[i].ID != sourceID {
			pool = append(pool, records[i])
		}
	}
	return pool
}

func (r *Resilient) fallback(ctx context.Context, err error) {
	if ctx.Err() != nil {
		// the caller gave up; the engine reports the cancellation itself
		return
	}

	reason := ReasonError
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		reason = ReasonCircuitOpen
	}
	metrics.RecordProviderFallback(reason)

	r.logger.Warn().
		Err(err).
		Str("reason", reason).
		Msg("record provider unavailable, using empty pool")
}

// stateValue maps breaker states to the gauge encoding (0=closed, 1=half-open, 2=open).
func stateValue(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
