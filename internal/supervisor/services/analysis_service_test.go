// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/snapgraph/internal/discovery"
)

// mockClusterEngine is a mock implementation for testing.
type mockClusterEngine struct {
	mu       sync.Mutex
	calls    int
	lastSize int
	err      error
	delay    time.Duration
}

func (m *mockClusterEngine) FindClusters(ctx context.Context, records []discovery.Record) ([]discovery.ContentCluster, error) {
	m.mu.Lock()
	m.calls++
	m.lastSize = len(records)
	delay, err := m.delay, m.err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}
	return []discovery.ContentCluster{}, nil
}

func (m *mockClusterEngine) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockClusterEngine) getLastSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSize
}

type mockCorpus struct {
	records []discovery.Record
}

func (m *mockCorpus) Corpus(ctx context.Context) []discovery.Record {
	return m.records
}

func newCorpus(n int) *mockCorpus {
	records := make([]discovery.Record, n)
	for i := range records {
		records[i] = discovery.Record{ID: string(rune('a' + i)), Timestamp: time.Date(2026, 4, 2, 10, i, 0, 0, time.UTC)}
	}
	return &mockCorpus{records: records}
}

// waitCalls polls until the engine has been called want times.
func waitCalls(t *testing.T, engine *mockClusterEngine, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if engine.getCalls() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("FindClusters() called %d times, want %d", engine.getCalls(), want)
}

// startService runs svc until the test ends.
func startService(t *testing.T, svc suture.Service) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = svc.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestAnalysisService_Interface(t *testing.T) {
	var _ suture.Service = (*AnalysisService)(nil)
}

func TestAnalysisService_String(t *testing.T) {
	service := NewAnalysisService(&mockClusterEngine{}, newCorpus(0), AnalysisServiceConfig{}, zerolog.Nop())

	if got := service.String(); got != "analysis-service" {
		t.Errorf("String() = %q, want %q", got, "analysis-service")
	}
}

func TestAnalysisService_Defaults(t *testing.T) {
	service := NewAnalysisService(&mockClusterEngine{}, newCorpus(0), AnalysisServiceConfig{}, zerolog.Nop())

	if service.config.ClusterInterval != 15*time.Minute {
		t.Errorf("ClusterInterval = %v, want 15m", service.config.ClusterInterval)
	}
	if service.config.RunTimeout != 5*time.Minute {
		t.Errorf("RunTimeout = %v, want 5m", service.config.RunTimeout)
	}
	if service.config.RefreshBurst != 1 {
		t.Errorf("RefreshBurst = %d, want 1", service.config.RefreshBurst)
	}
}

func TestAnalysisService_ClusterOnStartup(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{}
	cfg := AnalysisServiceConfig{
		ClusterOnStartup: true,
		ClusterInterval:  time.Hour,
	}
	service := NewAnalysisService(engine, newCorpus(3), cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := service.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if got := engine.getCalls(); got != 1 {
		t.Errorf("FindClusters() called %d times, want 1", got)
	}
	if got := engine.getLastSize(); got != 3 {
		t.Errorf("clustered %d records, want 3", got)
	}
}

func TestAnalysisService_NoStartupRun(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{}
	service := NewAnalysisService(engine, newCorpus(3), AnalysisServiceConfig{ClusterInterval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = service.Serve(ctx)

	if got := engine.getCalls(); got != 0 {
		t.Errorf("FindClusters() called %d times, want 0", got)
	}
}

func TestAnalysisService_ScheduledRuns(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{}
	service := NewAnalysisService(engine, newCorpus(2), AnalysisServiceConfig{ClusterInterval: 20 * time.Millisecond}, zerolog.Nop())

	startService(t, service)
	waitCalls(t, engine, 2)
}

func TestAnalysisService_Trigger(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{}
	service := NewAnalysisService(engine, newCorpus(2), AnalysisServiceConfig{ClusterInterval: time.Hour}, zerolog.Nop())

	startService(t, service)

	if err := service.Trigger(); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	waitCalls(t, engine, 1)
}

func TestAnalysisService_TriggerCoalesces(t *testing.T) {
	engine := &mockClusterEngine{}
	service := NewAnalysisService(engine, newCorpus(1), AnalysisServiceConfig{ClusterInterval: time.Hour}, zerolog.Nop())

	// not serving, so requests pile up in the pending slot
	for i := 0; i < 5; i++ {
		if err := service.Trigger(); err != nil {
			t.Fatalf("Trigger() error = %v", err)
		}
	}
	if got := len(service.trigger); got != 1 {
		t.Errorf("pending triggers = %d, want 1", got)
	}
}

func TestAnalysisService_TriggerThrottled(t *testing.T) {
	engine := &mockClusterEngine{}
	cfg := AnalysisServiceConfig{
		ClusterInterval: time.Hour,
		RefreshInterval: time.Hour,
		RefreshBurst:    2,
	}
	service := NewAnalysisService(engine, newCorpus(1), cfg, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := service.Trigger(); err != nil {
			t.Fatalf("Trigger() #%d error = %v", i+1, err)
		}
	}
	if err := service.Trigger(); !errors.Is(err, ErrRefreshThrottled) {
		t.Errorf("Trigger() error = %v, want ErrRefreshThrottled", err)
	}
}

func TestAnalysisService_FailureKeepsRunning(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{err: errors.New("boom")}
	cfg := AnalysisServiceConfig{
		ClusterOnStartup: true,
		ClusterInterval:  20 * time.Millisecond,
	}
	service := NewAnalysisService(engine, newCorpus(2), cfg, zerolog.Nop())

	startService(t, service)
	waitCalls(t, engine, 3)
}

func TestAnalysisService_RunTimeout(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{delay: time.Second}
	cfg := AnalysisServiceConfig{
		ClusterOnStartup: true,
		ClusterInterval:  time.Hour,
		RunTimeout:       20 * time.Millisecond,
	}
	service := NewAnalysisService(engine, newCorpus(2), cfg, zerolog.Nop())

	start := time.Now()
	startService(t, service)
	waitCalls(t, engine, 1)

	// a stuck pass must not hold the trigger loop past its timeout
	if err := service.Trigger(); err != nil {
		t.Fatal(err)
	}
	waitCalls(t, engine, 2)
	if elapsed := time.Since(start); elapsed > 900*time.Millisecond {
		t.Errorf("second pass started after %v, expected the first to time out", elapsed)
	}
}

func TestAnalysisService_WithSupervisor(t *testing.T) {
	t.Parallel()
	engine := &mockClusterEngine{}
	service := NewAnalysisService(engine, newCorpus(1), AnalysisServiceConfig{ClusterOnStartup: true, ClusterInterval: time.Hour}, zerolog.Nop())

	sup := suture.NewSimple("test-analysis")
	sup.Add(service)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitCalls(t, engine, 1)
	cancel()

	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
}
