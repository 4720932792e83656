// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/snapgraph/internal/metrics"
)

// ApplyRetentionPolicy deletes the backups the retention policy no longer
// keeps and returns how many were removed.
func (m *Manager) ApplyRetentionPolicy(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.metadataMu.Lock()
	defer m.metadataMu.Unlock()

	backups := make([]*Backup, len(m.metadata.Backups))
	copy(backups, m.metadata.Backups)
	sortNewestFirst(backups)

	toDelete := planDeletions(backups, m.cfg.Retention, m.now())
	if len(toDelete) == 0 {
		return 0, nil
	}

	var deleted int
	var freed int64
	for _, b := range toDelete {
		if err := m.deleteLocked(b); err != nil {
			m.logger.Warn().Err(err).Str("backup_id", b.ID).Msg("failed to delete backup")
			continue
		}
		deleted++
		freed += b.FileSize
	}
	metrics.BackupsPruned.Add(float64(deleted))

	if err := m.saveMetadataLocked(); err != nil {
		return deleted, err
	}

	m.logger.Info().
		Int("deleted", deleted).
		Int64("freed_bytes", freed).
		Int("remaining", len(m.metadata.Backups)).
		Msg("retention policy applied")
	return deleted, nil
}

// RetentionPreview lists the backups ApplyRetentionPolicy would delete now.
func (m *Manager) RetentionPreview() []*Backup {
	m.metadataMu.RLock()
	defer m.metadataMu.RUnlock()

	backups := make([]*Backup, len(m.metadata.Backups))
	copy(backups, m.metadata.Backups)
	sortNewestFirst(backups)

	planned := planDeletions(backups, m.cfg.Retention, m.now())
	out := make([]*Backup, 0, len(planned))
	for _, b := range planned {
		cp := *b
		out = append(out, &cp)
	}
	return out
}

// planDeletions picks the backups to delete. backups must be newest first.
//
// A backup survives the age limit if any keep rule selects it. MaxCount then
// caps the survivors, removing the oldest first, but never one of the
// MinCount newest.
func planDeletions(backups []*Backup, policy RetentionPolicy, now time.Time) []*Backup {
	keep := keepSet(backups, policy, now)

	var toDelete, survivors []*Backup
	for _, b := range backups {
		if !keep[b.ID] && tooOld(b, policy, now) {
			toDelete = append(toDelete, b)
			continue
		}
		survivors = append(survivors, b)
	}

	if policy.MaxCount <= 0 || len(survivors) <= policy.MaxCount {
		return toDelete
	}

	floor := max(policy.MaxCount, policy.MinCount)
	for i := len(survivors) - 1; i >= floor; i-- {
		toDelete = append(toDelete, survivors[i])
	}
	return toDelete
}

// keepSet applies the keep rules. backups must be newest first.
func keepSet(backups []*Backup, policy RetentionPolicy, now time.Time) map[string]bool {
	keep := make(map[string]bool)

	for i := 0; i < policy.MinCount && i < len(backups); i++ {
		keep[backups[i].ID] = true
	}

	if policy.KeepRecentHours > 0 {
		cutoff := now.Add(-time.Duration(policy.KeepRecentHours) * time.Hour)
		for _, b := range backups {
			if b.CreatedAt.After(cutoff) {
				keep[b.ID] = true
			}
		}
	}

	if policy.KeepDailyForDays > 0 {
		markPeriods(keep, backups, now.AddDate(0, 0, -policy.KeepDailyForDays), dayKey)
	}
	if policy.KeepWeeklyForWeeks > 0 {
		markPeriods(keep, backups, now.AddDate(0, 0, -7*policy.KeepWeeklyForWeeks), weekKey)
	}
	if policy.KeepMonthlyForMonths > 0 {
		markPeriods(keep, backups, now.AddDate(0, -policy.KeepMonthlyForMonths, 0), monthKey)
	}

	return keep
}

func tooOld(b *Backup, policy RetentionPolicy, now time.Time) bool {
	if policy.MaxAgeDays <= 0 {
		return false
	}
	return b.CreatedAt.Before(now.AddDate(0, 0, -policy.MaxAgeDays))
}

// markPeriods keeps the newest backup of each period after cutoff.
// backups must be newest first.
func markPeriods(keep map[string]bool, backups []*Backup, cutoff time.Time, key func(time.Time) string) {
	seen := make(map[string]bool)
	for _, b := range backups {
		if b.CreatedAt.Before(cutoff) {
			continue
		}
		k := key(b.CreatedAt)
		if seen[k] {
			continue
		}
		seen[k] = true
		keep[b.ID] = true
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func weekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
