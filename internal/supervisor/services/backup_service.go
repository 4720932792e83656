// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/backup"
)

// BackupRunner takes scheduled backups and prunes old ones.
//
// Satisfied by *backup.Manager.
type BackupRunner interface {
	CreateBackup(ctx context.Context, trigger backup.Trigger, notes string) (*backup.Backup, error)
	ApplyRetentionPolicy(ctx context.Context) (int, error)
}

// BackupService snapshots the record store on a fixed interval and applies
// the retention policy after each successful backup.
//
// Failures are logged and retried on the next tick.
type BackupService struct {
	backups  BackupRunner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewBackupService creates a new backup service.
// A non-positive interval defaults to 24 hours.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBackupService(backups BackupRunner, interval time.Duration, logger zerolog.Logger) *BackupService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BackupService{
		backups:  backups,
		interval: interval,
		logger:   logger.With().Str("service", "backup").Logger(),
		name:     "backup-service",
	}
}

// Serve implements suture.Service.
func (s *BackupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("backup service started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.run(ctx); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func (s *BackupService) run(ctx context.Context) error {
	b, err := s.backups.CreateBackup(ctx, backup.TriggerScheduled, "")
	if err != nil {
		s.logger.Warn().Err(err).Msg("scheduled backup failed")
		return err
	}
	s.logger.Debug().Str("backup_id", b.ID).Msg("scheduled backup complete")

	if _, err := s.backups.ApplyRetentionPolicy(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("backup retention failed")
		return err
	}
	return nil
}

// String implements fmt.Stringer for logging.
func (s *BackupService) String() string {
	return s.name
}
