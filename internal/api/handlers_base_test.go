// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/provider"
	"github.com/tomtom215/snapgraph/internal/store"
	ws "github.com/tomtom215/snapgraph/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "json",
		Output: io.Discard,
	})
}

var base = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

// fakeTrigger records refresh requests.
type fakeTrigger struct {
	calls atomic.Int32
	err   error
}

func (f *fakeTrigger) Trigger() error {
	f.calls.Add(1)
	return f.err
}

// testEnv wires a handler to an in-memory store, the real engine and a
// running hub.
type testEnv struct {
	store   *store.RecordStore
	engine  *discovery.Engine
	trigger *fakeTrigger
	hub     *ws.Hub
	handler *Handler
	router  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.Open(store.Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	engine, err := discovery.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	trigger := &fakeTrigger{}
	resilient := provider.New(s, provider.DefaultConfig(), zerolog.Nop())
	handler := NewHandler(s, resilient, engine, trigger, hub, HandlerConfig{
		RequestTimeout: 5 * time.Second,
		AllowedOrigins: []string{"http://snapgraph.test"},
	})

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true

	return &testEnv{
		store:   s,
		engine:  engine,
		trigger: trigger,
		hub:     hub,
		handler: handler,
		router:  NewRouter(handler, mw).SetupChi(),
	}
}

func (e *testEnv) seed(t *testing.T, records ...discovery.Record) {
	t.Helper()
	if err := e.store.PutRecords(context.Background(), records); err != nil {
		t.Fatalf("PutRecords() error = %v", err)
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatal(err)
			}
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// testResponse mirrors APIResponse with the payload left undecoded.
type testResponse struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp testResponse, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func textRecord(id string, offset time.Duration, text string) discovery.Record {
	return discovery.Record{ID: id, Timestamp: base.Add(offset), ExtractedText: text}
}
