// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// AppVersion is recorded in every backup. Set at build time.
var AppVersion = "dev"

// Errors
var (
	// ErrBackupNotFound is returned for an unknown backup ID.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrChecksumMismatch is returned when a backup file fails verification.
	ErrChecksumMismatch = errors.New("backup checksum mismatch")
)

// Snapshotter is the store side of a backup.
// Satisfied by *store.RecordStore.
type Snapshotter interface {
	Backup(ctx context.Context, w io.Writer) (uint64, error)
	Restore(ctx context.Context, r io.Reader) error
	Count(ctx context.Context) (int, error)
}

// Manager creates, lists, restores and prunes backups of a store.
// It is safe for concurrent use; backups and restores are serialized.
type Manager struct {
	cfg    Config
	store  Snapshotter
	logger zerolog.Logger
	now    func() time.Time

	// opMu serializes backup and restore operations
	opMu sync.Mutex

	metadataFile string
	metadataMu   sync.RWMutex
	metadata     *metadataStore
}

// NewManager creates a manager, creating cfg.Dir and loading any existing
// metadata.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(cfg Config, store Snapshotter, logger zerolog.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ensureDir(); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:          cfg,
		store:        store,
		logger:       logger.With().Str("component", "backup").Logger(),
		now:          time.Now,
		metadataFile: filepath.Join(cfg.Dir, "metadata.json"),
	}
	if err := m.loadMetadata(); err != nil {
		return nil, err
	}
	return m, nil
}

// loadMetadata reads metadata.json. A missing file is an empty index.
func (m *Manager) loadMetadata() error {
	data, err := os.ReadFile(m.metadataFile)
	if errors.Is(err, os.ErrNotExist) {
		m.metadata = &metadataStore{Backups: []*Backup{}}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read backup metadata: %w", err)
	}

	var md metadataStore
	if err := json.Unmarshal(data, &md); err != nil {
		return fmt.Errorf("failed to parse backup metadata: %w", err)
	}
	if md.Backups == nil {
		md.Backups = []*Backup{}
	}
	m.metadata = &md
	return nil
}

// saveMetadataLocked writes metadata.json atomically. Caller holds metadataMu.
func (m *Manager) saveMetadataLocked() error {
	data, err := json.MarshalIndent(m.metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup metadata: %w", err)
	}

	tmp := m.metadataFile + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("failed to write backup metadata: %w", err)
	}
	if err := os.Rename(tmp, m.metadataFile); err != nil {
		return fmt.Errorf("failed to replace backup metadata: %w", err)
	}
	return nil
}

// ListBackups returns every backup, newest first.
func (m *Manager) ListBackups() []*Backup {
	m.metadataMu.RLock()
	defer m.metadataMu.RUnlock()

	out := make([]*Backup, 0, len(m.metadata.Backups))
	for _, b := range m.metadata.Backups {
		cp := *b
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out
}

// GetBackup returns one backup by ID.
func (m *Manager) GetBackup(id string) (*Backup, error) {
	m.metadataMu.RLock()
	defer m.metadataMu.RUnlock()

	b, _ := m.findLocked(id)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, id)
	}
	cp := *b
	return &cp, nil
}

// DeleteBackup removes a backup file and its metadata entry.
func (m *Manager) DeleteBackup(id string) error {
	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()

	b, _ := m.findLocked(id)
	if b == nil {
		return fmt.Errorf("%w: %s", ErrBackupNotFound, id)
	}
	if err := m.deleteLocked(b); err != nil {
		return err
	}
	return m.saveMetadataLocked()
}

func (m *Manager) findLocked(id string) (*Backup, int) {
	for i, b := range m.metadata.Backups {
		if b.ID == id {
			return b, i
		}
	}
	return nil, -1
}

// deleteLocked removes b's file and entry without saving. Caller holds metadataMu.
func (m *Manager) deleteLocked(b *Backup) error {
	if err := os.Remove(b.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}
	if _, i := m.findLocked(b.ID); i >= 0 {
		m.metadata.Backups = append(m.metadata.Backups[:i], m.metadata.Backups[i+1:]...)
	}
	return nil
}

func sortNewestFirst(backups []*Backup) {
	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
}
