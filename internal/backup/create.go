// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/snapgraph/internal/metrics"
)

// CreateBackup snapshots the store into a new backup file.
func (m *Manager) CreateBackup(ctx context.Context, trigger Trigger, notes string) (*Backup, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.createLocked(ctx, trigger, notes)
}

// createLocked does the work of CreateBackup. Caller holds opMu.
func (m *Manager) createLocked(ctx context.Context, trigger Trigger, notes string) (b *Backup, err error) {
	start := m.now()
	defer func() {
		var size int64
		if b != nil {
			size = b.FileSize
		}
		metrics.RecordBackup(string(trigger), size, err)
	}()

	count, err := m.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	id := uuid.New().String()
	b = &Backup{
		ID:          id,
		Trigger:     trigger,
		CreatedAt:   start.UTC(),
		FilePath:    m.backupPath(start, id),
		Compressed:  m.cfg.Compress,
		RecordCount: count,
		AppVersion:  AppVersion,
		Notes:       notes,
	}

	size, sum, version, err := m.writeFile(ctx, b.FilePath)
	if err != nil {
		m.logger.Error().Err(err).Str("backup_id", id).Str("trigger", string(trigger)).Msg("backup failed")
		return nil, err
	}
	b.FileSize = size
	b.Checksum = sum
	b.StoreVersion = version
	b.Duration = m.now().Sub(start)

	m.metadataMu.Lock()
	m.metadata.Backups = append(m.metadata.Backups, b)
	err = m.saveMetadataLocked()
	m.metadataMu.Unlock()
	if err != nil {
		_ = os.Remove(b.FilePath)
		return nil, err
	}

	m.logger.Info().
		Str("backup_id", id).
		Str("trigger", string(trigger)).
		Int("records", count).
		Int64("bytes", size).
		Dur("duration", b.Duration).
		Msg("backup created")

	cp := *b
	return &cp, nil
}

func (m *Manager) backupPath(at time.Time, id string) string {
	name := fmt.Sprintf("snapgraph-%s-%s.bak", at.UTC().Format("20060102-150405"), id[:8])
	if m.cfg.Compress {
		name += ".gz"
	}
	return filepath.Join(m.cfg.Dir, name)
}

// writeFile streams a snapshot into a temporary file and renames it to path
// once it is complete and synced.
func (m *Manager) writeFile(ctx context.Context, path string) (size int64, checksum string, version uint64, err error) {
	tmp, err := os.CreateTemp(m.cfg.Dir, ".backup-*")
	if err != nil {
		return 0, "", 0, fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	hasher := sha256.New()
	counter := &countingWriter{w: io.MultiWriter(tmp, hasher)}

	version, err = m.snapshot(ctx, counter)
	if err != nil {
		return 0, "", 0, err
	}

	if err = tmp.Sync(); err != nil {
		return 0, "", 0, fmt.Errorf("failed to sync backup file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return 0, "", 0, fmt.Errorf("failed to close backup file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o640); err != nil {
		return 0, "", 0, fmt.Errorf("failed to set backup permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, "", 0, fmt.Errorf("failed to finalize backup file: %w", err)
	}

	return counter.n, hexSum(hasher), version, nil
}

// snapshot writes the store backup stream to w, gzip encoded if configured.
func (m *Manager) snapshot(ctx context.Context, w io.Writer) (uint64, error) {
	if !m.cfg.Compress {
		return m.store.Backup(ctx, w)
	}

	gz, err := gzip.NewWriterLevel(w, m.cfg.CompressionLevel)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	version, err := m.store.Backup(ctx, gz)
	if err != nil {
		_ = gz.Close()
		return 0, err
	}
	if err := gz.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return version, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
