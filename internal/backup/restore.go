// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Verify checks a backup file against its recorded checksum.
func (m *Manager) Verify(id string) error {
	b, err := m.GetBackup(id)
	if err != nil {
		return err
	}
	return verifyFile(b)
}

//nolint:gosec // G304: path comes from backup metadata
func verifyFile(b *Backup) error {
	f, err := os.Open(b.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}
	if got := hexSum(hasher); got != b.Checksum {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, b.ID)
	}
	return nil
}

// Restore replaces the store contents with a backup. The file is verified
// before the store is touched.
func (m *Manager) Restore(ctx context.Context, id string, opts RestoreOptions) (*RestoreResult, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	start := m.now()
	result := &RestoreResult{BackupID: id}

	b, err := m.GetBackup(id)
	if err != nil {
		return nil, err
	}
	if err := verifyFile(b); err != nil {
		return nil, err
	}
	result.Verified = true
	if opts.VerifyOnly {
		result.Duration = m.now().Sub(start)
		return result, nil
	}

	if result.RecordsBefore, err = m.store.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	if opts.PreRestoreBackup {
		pre, err := m.createLocked(ctx, TriggerPreRestore, "before restoring "+id)
		if err != nil {
			return nil, fmt.Errorf("pre-restore backup failed: %w", err)
		}
		result.PreRestoreBackup = pre.ID
	}

	if err := m.load(ctx, b); err != nil {
		m.logger.Error().Err(err).Str("backup_id", id).Msg("restore failed")
		return nil, err
	}
	result.Restored = true

	if result.RecordsAfter, err = m.store.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	result.Duration = m.now().Sub(start)

	m.logger.Info().
		Str("backup_id", id).
		Int("records_before", result.RecordsBefore).
		Int("records_after", result.RecordsAfter).
		Dur("duration", result.Duration).
		Msg("backup restored")

	return result, nil
}

//nolint:gosec // G304: path comes from backup metadata
func (m *Manager) load(ctx context.Context, b *Backup) error {
	f, err := os.Open(b.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if b.Compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	if err := m.store.Restore(ctx, r); err != nil {
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}
