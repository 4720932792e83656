// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/snapgraph/internal/api"
	"github.com/tomtom215/snapgraph/internal/backup"
	"github.com/tomtom215/snapgraph/internal/config"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/store"
)

// BackupListOutput is the result of backup list and backup prune.
type BackupListOutput struct {
	Dir     string           `json:"dir"`
	DryRun  bool             `json:"dry_run,omitempty"`
	Pruned  bool             `json:"pruned,omitempty"`
	Count   int              `json:"count"`
	Backups []*backup.Backup `json:"backups"`
}

type backupOptions struct {
	dir string
}

func newBackupCmd(opts *globalOptions) *cobra.Command {
	bopts := &backupOptions{}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list, restore and prune record store backups",
		Long: `Manage backups of the record store given by --store.

Backups are gzip compressed BadgerDB snapshots with a SHA-256 checksum,
indexed by metadata.json in the backup directory. The directory and the
retention policy come from the backup section of the configuration; --dir
overrides the directory.`,
	}
	cmd.PersistentFlags().StringVar(&bopts.dir, "dir", config.Default().Backup.Dir, "Backup directory")

	cmd.AddCommand(
		newBackupCreateCmd(opts, bopts),
		newBackupListCmd(opts, bopts),
		newBackupRestoreCmd(opts, bopts),
		newBackupPruneCmd(opts, bopts),
	)
	return cmd
}

// openBackups opens the backup manager, with the record store when withStore
// is set. The returned store is nil otherwise and must be closed if not.
func openBackups(cmd *cobra.Command, opts *globalOptions, bopts *backupOptions, withStore bool) (*backup.Manager, *store.RecordStore, error) {
	if opts.corpusPath != "" {
		return nil, nil, errors.New("backup does not accept --corpus")
	}

	cfg := config.Default().Backup
	if opts.cfg != nil {
		cfg = opts.cfg.Backup
	}
	if cmd.Flags().Changed("dir") {
		cfg.Dir = bopts.dir
	}
	bopts.dir = cfg.Dir
	backup.AppVersion = api.Version

	var s *store.RecordStore
	var snap backup.Snapshotter
	if withStore {
		if opts.storePath == "" {
			return nil, nil, errors.New("this command requires --store")
		}
		var err error
		if s, err = openRecords(cmd.Context(), opts); err != nil {
			return nil, nil, err
		}
		snap = s
	}

	m, err := backup.NewManager(cfg.ManagerConfig(), snap, logging.WithComponent("backup"))
	if err != nil {
		if s != nil {
			closeStore(s)
		}
		return nil, nil, err
	}
	return m, s, nil
}

func newBackupCreateCmd(opts *globalOptions, bopts *backupOptions) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Back up the record store",
		Example: `  snapctl --store ./data backup create --dir ./backups
  snapctl --store ./data backup create --notes "before re-import"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, s, err := openBackups(cmd, opts, bopts, true)
			if err != nil {
				return err
			}
			defer closeStore(s)

			b, err := m.CreateBackup(cmd.Context(), backup.TriggerManual, notes)
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, b)
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form note stored with the backup")
	return cmd
}

func newBackupListCmd(opts *globalOptions, bopts *backupOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := openBackups(cmd, opts, bopts, false)
			if err != nil {
				return err
			}
			list := m.ListBackups()
			return writeOutput(cmd, opts, &BackupListOutput{Dir: bopts.dir, Count: len(list), Backups: list})
		},
	}
}

func newBackupRestoreCmd(opts *globalOptions, bopts *backupOptions) *cobra.Command {
	var skipSafety, verifyOnly bool

	cmd := &cobra.Command{
		Use:   "restore <backup-id>",
		Short: "Replace the record store contents with a backup",
		Long: `Restore verifies the backup checksum, snapshots the current store
(unless --no-safety-backup) and then replaces every record.

Stop the server before restoring into its store directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, s, err := openBackups(cmd, opts, bopts, !verifyOnly)
			if err != nil {
				return err
			}
			if s != nil {
				defer closeStore(s)
			}

			if verifyOnly {
				if err := m.Verify(args[0]); err != nil {
					return err
				}
				return writeOutput(cmd, opts, &backup.RestoreResult{BackupID: args[0], Verified: true})
			}

			result, err := m.Restore(cmd.Context(), args[0], backup.RestoreOptions{PreRestoreBackup: !skipSafety})
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts, result)
		},
	}
	cmd.Flags().BoolVar(&skipSafety, "no-safety-backup", false, "Skip the pre-restore backup")
	cmd.Flags().BoolVar(&verifyOnly, "verify-only", false, "Only check the backup checksum")
	return cmd
}

func newBackupPruneCmd(opts *globalOptions, bopts *backupOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete backups outside the retention policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := openBackups(cmd, opts, bopts, false)
			if err != nil {
				return err
			}

			planned := m.RetentionPreview()
			if !dryRun {
				if _, err := m.ApplyRetentionPolicy(cmd.Context()); err != nil {
					return err
				}
			}
			return writeOutput(cmd, opts, &BackupListOutput{
				Dir:     bopts.dir,
				DryRun:  dryRun,
				Pruned:  !dryRun,
				Count:   len(planned),
				Backups: planned,
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be deleted without deleting")
	return cmd
}
