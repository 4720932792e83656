// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"time"
)

// Trigger indicates what initiated a backup.
type Trigger string

const (
	// TriggerManual is a backup requested by an operator.
	TriggerManual Trigger = "manual"

	// TriggerScheduled is a backup taken by the backup service.
	TriggerScheduled Trigger = "scheduled"

	// TriggerPreRestore is the safety snapshot taken before a restore.
	TriggerPreRestore Trigger = "pre_restore"
)

// Backup is the metadata of one backup file.
type Backup struct {
	ID        string    `json:"id"`
	Trigger   Trigger   `json:"trigger"`
	CreatedAt time.Time `json:"created_at"`

	// Duration of the backup operation
	Duration time.Duration `json:"duration"`

	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`

	// Compressed is true when the file is gzip encoded.
	Compressed bool `json:"compressed"`

	// Checksum is the hex SHA-256 of the file as written.
	Checksum string `json:"checksum"`

	// RecordCount is the number of records in the store when the backup started.
	RecordCount int `json:"record_count"`

	// StoreVersion is the BadgerDB version the snapshot covers.
	StoreVersion uint64 `json:"store_version"`

	AppVersion string `json:"app_version"`
	Notes      string `json:"notes,omitempty"`
}

// RestoreOptions control Restore.
type RestoreOptions struct {
	// PreRestoreBackup snapshots the current store before it is replaced.
	PreRestoreBackup bool

	// VerifyOnly checks the file checksum without touching the store.
	VerifyOnly bool
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	BackupID         string        `json:"backup_id"`
	PreRestoreBackup string        `json:"pre_restore_backup_id,omitempty"`
	RecordsBefore    int           `json:"records_before"`
	RecordsAfter     int           `json:"records_after"`
	Verified         bool          `json:"verified"`
	Restored         bool          `json:"restored"`
	Duration         time.Duration `json:"duration"`
}

// metadataStore is the on-disk index of backups.
type metadataStore struct {
	Backups []*Backup `json:"backups"`
}
