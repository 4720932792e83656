// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/store"
)

var base = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

// setupManager returns a manager over an in-memory store holding n records.
func setupManager(t *testing.T, cfg Config, n int) (*Manager, *store.RecordStore) {
	t.Helper()
	s, err := store.Open(store.Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	putRecords(t, s, "r", n)

	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	m, err := NewManager(cfg, s, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m, s
}

func putRecords(t *testing.T, s *store.RecordStore, prefix string, n int) {
	t.Helper()
	records := make([]discovery.Record, n)
	for i := range records {
		records[i] = discovery.Record{
			ID:            prefix + string(rune('a'+i)),
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			ExtractedText: "invoice total due",
		}
	}
	if err := s.PutRecords(context.Background(), records); err != nil {
		t.Fatalf("PutRecords() error = %v", err)
	}
}

func countRecords(t *testing.T, s *store.RecordStore) int {
	t.Helper()
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	return n
}

func TestNewManager_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing dir", Config{}},
		{"bad level", Config{Dir: t.TempDir(), Compress: true, CompressionLevel: 12}},
		{"negative count", Config{Dir: t.TempDir(), Retention: RetentionPolicy{MinCount: -1}}},
		{"min above max", Config{Dir: t.TempDir(), Retention: RetentionPolicy{MinCount: 5, MaxCount: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewManager(tt.cfg, nil, zerolog.Nop()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestManager_CreateBackup(t *testing.T) {
	t.Parallel()

	for _, compress := range []bool{true, false} {
		name := "plain"
		if compress {
			name = "gzip"
		}
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig(t.TempDir())
			cfg.Compress = compress
			m, _ := setupManager(t, cfg, 4)

			b, err := m.CreateBackup(context.Background(), TriggerManual, "before upgrade")
			if err != nil {
				t.Fatalf("CreateBackup() error = %v", err)
			}

			if b.RecordCount != 4 {
				t.Errorf("RecordCount = %d, want 4", b.RecordCount)
			}
			if b.Trigger != TriggerManual || b.Notes != "before upgrade" {
				t.Errorf("unexpected backup metadata: %+v", b)
			}
			if len(b.Checksum) != 64 {
				t.Errorf("Checksum = %q, want hex sha256", b.Checksum)
			}
			if strings.HasSuffix(b.FilePath, ".gz") != compress {
				t.Errorf("FilePath = %q, compressed = %v", b.FilePath, compress)
			}

			info, err := os.Stat(b.FilePath)
			if err != nil {
				t.Fatalf("backup file missing: %v", err)
			}
			if info.Size() != b.FileSize {
				t.Errorf("FileSize = %d, file is %d bytes", b.FileSize, info.Size())
			}
			if err := m.Verify(b.ID); err != nil {
				t.Errorf("Verify() error = %v", err)
			}

			leftovers, _ := filepath.Glob(filepath.Join(cfg.Dir, ".backup-*"))
			if len(leftovers) != 0 {
				t.Errorf("temporary files left behind: %v", leftovers)
			}
		})
	}
}

func TestManager_MetadataPersists(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(t.TempDir())
	m, s := setupManager(t, cfg, 2)

	b, err := m.CreateBackup(context.Background(), TriggerScheduled, "")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	reloaded, err := NewManager(cfg, s, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	got, err := reloaded.GetBackup(b.ID)
	if err != nil {
		t.Fatalf("GetBackup() error = %v", err)
	}
	if got.Checksum != b.Checksum || got.Trigger != TriggerScheduled {
		t.Errorf("reloaded backup = %+v, want %+v", got, b)
	}
}

func TestManager_CorruptMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(DefaultConfig(dir), nil, zerolog.Nop()); err == nil {
		t.Error("expected error for corrupt metadata")
	}
}

func TestManager_ListBackups_NewestFirst(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t, DefaultConfig(""), 1)
	clock := base
	m.now = func() time.Time { return clock }

	var ids []string
	for i := 0; i < 3; i++ {
		b, err := m.CreateBackup(context.Background(), TriggerManual, "")
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		ids = append(ids, b.ID)
		clock = clock.Add(time.Hour)
	}

	list := m.ListBackups()
	if len(list) != 3 {
		t.Fatalf("ListBackups() returned %d, want 3", len(list))
	}
	for i, b := range list {
		if want := ids[len(ids)-1-i]; b.ID != want {
			t.Errorf("list[%d] = %s, want %s", i, b.ID, want)
		}
	}
}

func TestManager_DeleteBackup(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t, DefaultConfig(""), 1)
	b, err := m.CreateBackup(context.Background(), TriggerManual, "")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := m.DeleteBackup(b.ID); err != nil {
		t.Fatalf("DeleteBackup() error = %v", err)
	}
	if _, err := os.Stat(b.FilePath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("backup file still present: %v", err)
	}
	if _, err := m.GetBackup(b.ID); !errors.Is(err, ErrBackupNotFound) {
		t.Errorf("GetBackup() error = %v, want ErrBackupNotFound", err)
	}
	if err := m.DeleteBackup(b.ID); !errors.Is(err, ErrBackupNotFound) {
		t.Errorf("second DeleteBackup() error = %v, want ErrBackupNotFound", err)
	}
}

func TestManager_Restore(t *testing.T) {
	t.Parallel()

	m, s := setupManager(t, DefaultConfig(""), 3)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, TriggerManual, "")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	putRecords(t, s, "x", 5)
	if err := s.DeleteRecord(ctx, "ra"); err != nil {
		t.Fatal(err)
	}
	if got := countRecords(t, s); got != 7 {
		t.Fatalf("records before restore = %d, want 7", got)
	}

	result, err := m.Restore(ctx, b.ID, RestoreOptions{PreRestoreBackup: true})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if !result.Verified || !result.Restored {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.RecordsBefore != 7 || result.RecordsAfter != 3 {
		t.Errorf("records before/after = %d/%d, want 7/3", result.RecordsBefore, result.RecordsAfter)
	}
	if _, err := s.GetRecord(ctx, "ra"); err != nil {
		t.Errorf("deleted record not restored: %v", err)
	}
	if _, err := s.GetRecord(ctx, "xa"); !errors.Is(err, store.ErrRecordNotFound) {
		t.Errorf("record added after the backup survived restore: %v", err)
	}

	pre, err := m.GetBackup(result.PreRestoreBackup)
	if err != nil {
		t.Fatalf("pre-restore backup missing: %v", err)
	}
	if pre.Trigger != TriggerPreRestore || pre.RecordCount != 7 {
		t.Errorf("pre-restore backup = %+v", pre)
	}
}

func TestManager_Restore_VerifyOnly(t *testing.T) {
	t.Parallel()

	m, s := setupManager(t, DefaultConfig(""), 2)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, TriggerManual, "")
	if err != nil {
		t.Fatal(err)
	}
	putRecords(t, s, "x", 1)

	result, err := m.Restore(ctx, b.ID, RestoreOptions{VerifyOnly: true})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if !result.Verified || result.Restored {
		t.Errorf("unexpected result: %+v", result)
	}
	if got := countRecords(t, s); got != 3 {
		t.Errorf("verify-only restore changed the store: %d records", got)
	}
}

func TestManager_Restore_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	m, s := setupManager(t, DefaultConfig(""), 2)
	ctx := context.Background()

	b, err := m.CreateBackup(ctx, TriggerManual, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b.FilePath, []byte("tampered"), 0o600); err != nil {
		t.Fatal(err)
	}
	putRecords(t, s, "x", 1)

	if _, err := m.Restore(ctx, b.ID, RestoreOptions{}); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("Restore() error = %v, want ErrChecksumMismatch", err)
	}
	if got := countRecords(t, s); got != 3 {
		t.Errorf("failed restore changed the store: %d records", got)
	}
}

func TestManager_Restore_NotFound(t *testing.T) {
	t.Parallel()

	m, _ := setupManager(t, DefaultConfig(""), 0)
	if _, err := m.Restore(context.Background(), "missing", RestoreOptions{}); !errors.Is(err, ErrBackupNotFound) {
		t.Errorf("Restore() error = %v, want ErrBackupNotFound", err)
	}
}

func TestManager_CreateBackup_ClosedStore(t *testing.T) {
	t.Parallel()

	m, s := setupManager(t, DefaultConfig(""), 1)
	_ = s.Close()

	if _, err := m.CreateBackup(context.Background(), TriggerManual, ""); err == nil {
		t.Fatal("expected error from closed store")
	}
	if n := len(m.ListBackups()); n != 0 {
		t.Errorf("failed backup recorded in metadata: %d entries", n)
	}
}
