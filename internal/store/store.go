// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/metrics"
	"github.com/tomtom215/snapgraph/internal/validation"
)

// recordKeyPrefix namespaces record keys in BadgerDB.
const recordKeyPrefix = "record:"

// Errors
var (
	// ErrRecordNotFound is returned when no record has the requested ID.
	ErrRecordNotFound = errors.New("record not found")

	// ErrStoreClosed is returned by every method after Close.
	ErrStoreClosed = errors.New("record store is closed")
)

// Config configures a RecordStore.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the database in memory only.
	// Default: false
	InMemory bool

	// SyncWrites fsyncs after every write.
	// Default: false
	SyncWrites bool

	// GCRatio is the value log discard ratio passed to RunValueLogGC.
	// Default: 0.5
	GCRatio float64
}

// RecordStore persists records in BadgerDB. It implements
// discovery.RecordProvider and is safe for concurrent use.
type RecordStore struct {
	db     *badger.DB
	cfg    Config
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ discovery.RecordProvider = (*RecordStore)(nil)

// Open opens or creates the store described by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*RecordStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store path is required for on-disk stores")
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &RecordStore{
		db:     db,
		cfg:    cfg,
		logger: logger.With().Str("component", "store").Logger(),
	}

	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("record store opened")

	return s, nil
}

func recordKey(id string) []byte {
	return []byte(recordKeyPrefix + id)
}

// PutRecord stores r, replacing any record with the same ID.
//
//nolint:gocritic // hugeParam: Record passed by value for immutability
func (s *RecordStore) PutRecord(ctx context.Context, r discovery.Record) error {
	return s.PutRecords(ctx, []discovery.Record{r})
}

// PutRecords stores records in a single transaction. Every record is
// validated first; nothing is written if any record is invalid. Later
// duplicates of an ID win.
func (s *RecordStore) PutRecords(ctx context.Context, records []discovery.Record) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("put", time.Since(start), err) }()

	if err := s.check(ctx); err != nil {
		return err
	}

	encoded := make([][]byte, len(records))
	for i := range records {
		if verr := validation.ValidateStruct(&records[i]); verr != nil {
			return fmt.Errorf("record %d (%q): %w", i, records[i].ID, verr)
		}
		data, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("marshal record %q: %w", records[i].ID, err)
		}
		encoded[i] = data
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range records {
		if err := wb.Set(recordKey(records[i].ID), encoded[i]); err != nil {
			return fmt.Errorf("set record %q: %w", records[i].ID, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}

	s.logger.Debug().Int("records", len(records)).Msg("records stored")
	return nil
}

// GetRecord returns the record with id, or ErrRecordNotFound.
func (s *RecordStore) GetRecord(ctx context.Context, id string) (r discovery.Record, err error) {
	start := time.Now()
	defer func() {
		// a miss is an answer, not a failure
		opErr := err
		if errors.Is(err, ErrRecordNotFound) {
			opErr = nil
		}
		metrics.RecordStoreOperation("get", time.Since(start), opErr)
	}()

	if err := s.check(ctx); err != nil {
		return discovery.Record{}, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("get record: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return discovery.Record{}, err
	}
	return r, nil
}

// ListRecords returns every record ordered by timestamp, then ID. The order
// is stable across calls, which keeps matcher sampling deterministic.
func (s *RecordStore) ListRecords(ctx context.Context) (records []discovery.Record, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("list", time.Since(start), err) }()

	if err := s.check(ctx); err != nil {
		return nil, err
	}

	records = make([]discovery.Record, 0)
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(recordKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var r discovery.Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode record %s: %w", it.Item().Key(), err)
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.Before(records[j].Timestamp)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// DeleteRecord removes the record with id. Deleting a missing record is not an error.
func (s *RecordStore) DeleteRecord(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("delete", time.Since(start), err) }()

	if err := s.check(ctx); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(recordKey(id)); err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored records.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(recordKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims value log space until BadgerDB reports nothing to rewrite.
// In-memory stores have no value log and return immediately.
func (s *RecordStore) RunGC(ctx context.Context) (err error) {
	if s.cfg.InMemory {
		return nil
	}

	start := time.Now()
	defer func() { metrics.RecordStoreOperation("gc", time.Since(start), err) }()

	for {
		if err := s.check(ctx); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(s.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// restoreMaxPendingWrites bounds BadgerDB's in-flight batches during Restore.
const restoreMaxPendingWrites = 256

// Backup streams a full snapshot of the store to w in BadgerDB's backup
// format and returns the version it covers.
func (s *RecordStore) Backup(ctx context.Context, w io.Writer) (version uint64, err error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	start := time.Now()
	defer func() { metrics.RecordStoreOperation("backup", time.Since(start), err) }()

	version, err = s.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup BadgerDB: %w", err)
	}
	return version, nil
}

// Restore replaces every record with the snapshot read from r. The store
// is emptied first, so a failed restore can leave it partially loaded.
func (s *RecordStore) Restore(ctx context.Context, r io.Reader) (err error) {
	if err := s.check(ctx); err != nil {
		return err
	}

	start := time.Now()
	defer func() { metrics.RecordStoreOperation("restore", time.Since(start), err) }()

	if err := s.db.DropPrefix([]byte(recordKeyPrefix)); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if err := s.db.Load(r, restoreMaxPendingWrites); err != nil {
		return fmt.Errorf("load BadgerDB backup: %w", err)
	}

	s.logger.Info().Dur("duration", time.Since(start)).Msg("record store restored")
	return nil
}

// Close closes the database. Further calls return ErrStoreClosed.
func (s *RecordStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("record store closed")
	return nil
}

// check fails fast on a closed store or a done context.
func (s *RecordStore) check(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()

	if closed {
		return ErrStoreClosed
	}
	return ctx.Err()
}
