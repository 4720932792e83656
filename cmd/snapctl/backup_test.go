// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/snapgraph/internal/backup"
)

func decode(t *testing.T, out string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("decode output: %v (%q)", err, out)
	}
}

func TestBackup_CreateListRestore(t *testing.T) {
	storeDir := t.TempDir()
	backupDir := t.TempDir()

	if _, err := run(t, "--store", storeDir, "import", writeCorpus(t, testRecords()[:2])); err != nil {
		t.Fatalf("import error = %v", err)
	}

	out, err := run(t, "--store", storeDir, "backup", "create", "--dir", backupDir, "--notes", "two records")
	if err != nil {
		t.Fatalf("backup create error = %v", err)
	}
	var created backup.Backup
	decode(t, out, &created)
	if created.RecordCount != 2 || created.Trigger != backup.TriggerManual || created.Notes != "two records" {
		t.Errorf("unexpected backup: %+v", created)
	}

	if _, err := run(t, "--store", storeDir, "import", writeCorpus(t, testRecords())); err != nil {
		t.Fatalf("second import error = %v", err)
	}

	out, err = run(t, "backup", "list", "--dir", backupDir)
	if err != nil {
		t.Fatalf("backup list error = %v", err)
	}
	var list BackupListOutput
	decode(t, out, &list)
	if list.Count != 1 || list.Backups[0].ID != created.ID {
		t.Errorf("unexpected list: %+v", list)
	}

	out, err = run(t, "--store", storeDir, "backup", "restore", created.ID, "--dir", backupDir)
	if err != nil {
		t.Fatalf("backup restore error = %v", err)
	}
	var result backup.RestoreResult
	decode(t, out, &result)
	if result.RecordsBefore != 3 || result.RecordsAfter != 2 || result.PreRestoreBackup == "" {
		t.Errorf("unexpected restore result: %+v", result)
	}

	out, err = run(t, "--store", storeDir, "clusters")
	if err != nil {
		t.Fatalf("clusters error = %v", err)
	}
	var clusters ClustersOutput
	decode(t, out, &clusters)
	if clusters.Records != 2 {
		t.Errorf("store holds %d records after restore, want 2", clusters.Records)
	}

	out, err = run(t, "--format", "human", "backup", "list", "--dir", backupDir)
	if err != nil {
		t.Fatalf("backup list error = %v", err)
	}
	if !strings.Contains(out, "2 backups in") || !strings.Contains(out, "pre_restore") {
		t.Errorf("unexpected human list:\n%s", out)
	}
}

func TestBackup_VerifyOnlyAndPrune(t *testing.T) {
	storeDir := t.TempDir()
	backupDir := t.TempDir()

	if _, err := run(t, "--store", storeDir, "import", writeCorpus(t, testRecords())); err != nil {
		t.Fatalf("import error = %v", err)
	}
	out, err := run(t, "--store", storeDir, "backup", "create", "--dir", backupDir)
	if err != nil {
		t.Fatalf("backup create error = %v", err)
	}
	var created backup.Backup
	decode(t, out, &created)

	out, err = run(t, "--format", "human", "backup", "restore", created.ID, "--dir", backupDir, "--verify-only")
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if !strings.Contains(out, "verified") {
		t.Errorf("unexpected verify output %q", out)
	}

	// a single fresh backup is inside every retention rule
	out, err = run(t, "backup", "prune", "--dir", backupDir, "--dry-run")
	if err != nil {
		t.Fatalf("prune error = %v", err)
	}
	var planned BackupListOutput
	decode(t, out, &planned)
	if !planned.DryRun || planned.Count != 0 {
		t.Errorf("unexpected prune plan: %+v", planned)
	}
}

func TestBackup_Errors(t *testing.T) {
	corpus := writeCorpus(t, testRecords())
	backupDir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"create without store", []string{"backup", "create", "--dir", backupDir}, "requires --store"},
		{"create from corpus", []string{"--corpus", corpus, "backup", "create", "--dir", backupDir}, "does not accept --corpus"},
		{"restore unknown", []string{"--store", t.TempDir(), "backup", "restore", "nope", "--dir", backupDir}, backup.ErrBackupNotFound.Error()},
		{"restore needs id", []string{"--store", t.TempDir(), "backup", "restore", "--dir", backupDir}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
