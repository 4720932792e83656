// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/cache"
	"github.com/tomtom215/snapgraph/internal/metrics"
)

// matcherCount is the number of matchers run per cycle.
const matcherCount = 5

// recordSize is the shallow size of a Record, used for the memory estimate.
var recordSize = int64(unsafe.Sizeof(Record{}))

// Engine produces recommendations and clusters for a record corpus.
// It is safe for concurrent use.
type Engine struct {
	settings *Settings
	logger   zerolog.Logger
	scorer   Scorer

	// scores memoizes pairwise fusion results across calls; nil when disabled.
	scores *cache.LRU[pairKey, float64]

	profile  *Profile
	notifier Notifier
	state    publishedState
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithProfile injects a preference profile. By default a neutral profile is used.
func WithProfile(p *Profile) Option {
	return func(e *Engine) {
		if p != nil {
			e.profile = p
		}
	}
}

// WithNotifier registers a receiver for engine events.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a discovery engine. A nil settings value uses defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(settings *Settings, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if settings == nil {
		settings = DefaultSettings()
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	e := &Engine{
		settings: settings.Clone(),
		logger:   logger.With().Str("component", "discovery").Logger(),
		profile:  NewProfile(),
		now:      time.Now,
	}
	e.scorer = NewScorer(e.settings)

	if e.settings.Cache.Enabled {
		e.scores = cache.NewLRU[pairKey, float64](e.settings.Cache.MaxEntries, 0)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Settings returns a copy of the engine settings.
func (e *Engine) Settings() *Settings {
	return e.settings.Clone()
}

// Profile returns a snapshot of the preference profile.
func (e *Engine) Profile() ProfileSnapshot {
	return e.profile.Snapshot()
}

// State returns a snapshot of the published state.
func (e *Engine) State() State {
	return e.state.snapshot()
}

// CacheStats returns pairwise score cache statistics.
func (e *Engine) CacheStats() cache.Stats {
	if e.scores == nil {
		return cache.Stats{}
	}
	return e.scores.Stats()
}

// GenerateRecommendations runs one recommendation cycle for source against
// pool. The source's own ID is removed from the pool; nothing else is
// filtered. A maxResults of zero or less uses the configured maximum.
//
// With discovery disabled the result is empty with zero confidence. The only
// error is cancellation of ctx, in which case neither the profile nor the
// published state change.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (e *Engine) GenerateRecommendations(ctx context.Context, source Record, pool []Record, maxResults int) (*RecommendationResult, error) {
	if !e.settings.EnableContentDiscovery {
		metrics.RecordAnalysisOutcome("disabled", 0)
		return e.emptyResult(source, e.now()), nil
	}

	start := time.Now()
	e.beginAnalysis()
	defer e.endAnalysis()
	e.notify(ctx, Event{Type: EventAnalysisStarted, SourceID: source.ID, Timestamp: e.now()})

	result, err := e.generate(ctx, source, pool, maxResults)
	if err != nil {
		metrics.RecordAnalysisOutcome("cancelled", time.Since(start))
		e.notify(context.WithoutCancel(ctx), Event{
			Type:      EventAnalysisFailed,
			SourceID:  source.ID,
			Error:     err.Error(),
			Timestamp: e.now(),
		})
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	e.profile.Update(result, e.now())
	e.state.publishResult(result)

	e.logger.Debug().
		Str("source_id", source.ID).
		Int("pool", len(pool)).
		Int("related", len(result.RelatedContent)).
		Float64("confidence", result.Confidence).
		Dur("analysis_time", result.Metrics.AnalysisTime).
		Msg("recommendation cycle complete")

	e.notify(ctx, Event{
		Type:       EventAnalysisCompleted,
		SourceID:   source.ID,
		Confidence: result.Confidence,
		Matches:    totalMatches(result),
		Timestamp:  result.Timestamp,
	})

	return result, nil
}

// generate runs the matchers without touching the profile or published state.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (e *Engine) generate(ctx context.Context, source Record, pool []Record, maxResults int) (*RecommendationResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = e.settings.MaxRecommendations
	}

	candidates := excludeRecord(pool, source.ID)
	an := &analysis{
		settings: e.settings,
		scorer:   e.scorer,
		scores:   e.scores,
		now:      e.now(),
	}

	result := &RecommendationResult{Source: source}
	errs := e.runMatchers(ctx, an, source, candidates, maxResults, result)
	if err := errors.Join(errs...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	result.Confidence = e.confidence(result)
	result.Timestamp = an.now
	result.Metrics = ProcessingMetrics{
		AnalysisTime: time.Since(start),
		Comparisons:  len(candidates) * matcherCount,
		CacheHitRate: an.cacheHitRate(),
		MemoryUsage:  recordSize * int64(len(candidates)),
	}

	metrics.RecordScoreCache(an.hits.Load(), an.misses.Load())
	metrics.RecordAnalysis(result.Metrics.AnalysisTime, result.Metrics.Comparisons, matchCounts(result), result.Confidence)

	return result, nil
}

// runMatchers runs the five matchers concurrently over the same read-only
// inputs. Each goroutine writes only its own result field and error slot, and
// all of them are awaited before returning.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (e *Engine) runMatchers(ctx context.Context, an *analysis, source Record, candidates []Record, maxResults int, result *RecommendationResult) []error {
	errs := make([]error, matcherCount)
	var wg sync.WaitGroup
	wg.Add(matcherCount)

	go func() {
		defer wg.Done()
		result.RelatedContent, errs[0] = an.matchRelatedContent(ctx, source, candidates, maxResults)
	}()
	go func() {
		defer wg.Done()
		result.TemporalPatterns, errs[1] = an.matchTemporalPatterns(ctx, source, candidates)
	}()
	go func() {
		defer wg.Done()
		result.SemanticMatches, errs[2] = an.matchSemantic(ctx, source, candidates)
	}()
	go func() {
		defer wg.Done()
		result.VisualMatches, errs[3] = an.matchVisual(ctx, source, candidates)
	}()
	go func() {
		defer wg.Done()
		result.WorkflowMatches, errs[4] = an.matchWorkflow(ctx, source, candidates)
	}()

	wg.Wait()
	return errs
}

// confidence is the count-weighted mean of the per-category weights, or 0
// when nothing matched.
func (e *Engine) confidence(r *RecommendationResult) float64 {
	w := e.settings.ConfidenceWeights
	counts := matchCounts(r)

	total := counts.Related + counts.Temporal + counts.Semantic + counts.Visual + counts.Workflow
	if total == 0 {
		return 0
	}

	weighted := float64(counts.Related)*w.Related +
		float64(counts.Temporal)*w.Temporal +
		float64(counts.Semantic)*w.Semantic +
		float64(counts.Visual)*w.Visual +
		float64(counts.Workflow)*w.Workflow

	return clamp01(weighted / float64(total))
}

//nolint:gocritic // hugeParam: source passed by value for immutability
func (e *Engine) emptyResult(source Record, at time.Time) *RecommendationResult {
	return &RecommendationResult{
		Source:           source,
		RelatedContent:   []RelatedItem{},
		TemporalPatterns: []TemporalMatch{},
		SemanticMatches:  []SemanticMatch{},
		VisualMatches:    []VisualMatch{},
		WorkflowMatches:  []WorkflowMatch{},
		Timestamp:        at,
	}
}

func (e *Engine) beginAnalysis() {
	e.state.begin()
	metrics.TrackAnalysis(true)
}

func (e *Engine) endAnalysis() {
	e.state.end()
	metrics.TrackAnalysis(false)
}

// notify delivers an event. Notifier failures are logged and never fail the call.
func (e *Engine) notify(ctx context.Context, event Event) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, event); err != nil {
		e.logger.Warn().Err(err).Str("event", string(event.Type)).Msg("failed to publish discovery event")
	}
}

// excludeRecord returns pool without records carrying id. The input is not modified.
func excludeRecord(pool []Record, id string) []Record {
	filtered := make([]Record, 0, len(pool))
	for i := range pool {
		if pool[i].ID != id {
			filtered = append(filtered, pool[i])
		}
	}
	return filtered
}

func matchCounts(r *RecommendationResult) metrics.MatchCounts {
	return metrics.MatchCounts{
		Related:  len(r.RelatedContent),
		Temporal: len(r.TemporalPatterns),
		Semantic: len(r.SemanticMatches),
		Visual:   len(r.VisualMatches),
		Workflow: len(r.WorkflowMatches),
	}
}

func totalMatches(r *RecommendationResult) int {
	c := matchCounts(r)
	return c.Related + c.Temporal + c.Semantic + c.Visual + c.Workflow
}
