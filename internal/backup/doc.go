// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

// Package backup snapshots and restores the record store.
//
// A backup is one file holding a BadgerDB backup stream, optionally gzip
// compressed, plus an entry in metadata.json beside it:
//
//	<dir>/
//	├── metadata.json
//	├── snapgraph-20260402-100000-1a2b3c4d.bak.gz
//	└── snapgraph-20260403-100000-5e6f7a8b.bak.gz
//
// Every file carries a SHA-256 checksum that is verified before a restore.
// Files are written to a temporary name and renamed when complete, so a
// crash never leaves a truncated backup behind a metadata entry.
//
// Retention keeps the newest MinCount backups, everything from the last
// KeepRecentHours, and the newest backup of each day, week and month within
// their windows. Anything else is removed once it exceeds MaxAgeDays or
// pushes the total over MaxCount.
//
// Usage:
//
//	mgr, err := backup.NewManager(backup.DefaultConfig("/data/backups"), recordStore, logger)
//	b, err := mgr.CreateBackup(ctx, backup.TriggerManual, "before upgrade")
//	err = mgr.Restore(ctx, b.ID, backup.RestoreOptions{PreRestoreBackup: true})
package backup
