// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package backup

import (
	"errors"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Config configures a Manager.
type Config struct {
	// Dir holds backup files and metadata.json.
	Dir string

	// Compress gzips backup files.
	// Default: true
	Compress bool

	// CompressionLevel is the gzip level, 1 (fastest) to 9 (smallest).
	// Default: gzip.DefaultCompression
	CompressionLevel int

	Retention RetentionPolicy
}

// RetentionPolicy decides which backups survive a retention pass.
type RetentionPolicy struct {
	// Keep at least this many backups regardless of age
	MinCount int `json:"min_count"`

	// Maximum number of backups to keep (0 = unlimited)
	MaxCount int `json:"max_count"`

	// Maximum age of backups in days (0 = unlimited)
	MaxAgeDays int `json:"max_age_days"`

	// Keep all backups from the last N hours
	KeepRecentHours int `json:"keep_recent_hours"`

	// Keep the newest backup of each day for the last N days
	KeepDailyForDays int `json:"keep_daily_for_days"`

	// Keep the newest backup of each ISO week for the last N weeks
	KeepWeeklyForWeeks int `json:"keep_weekly_for_weeks"`

	// Keep the newest backup of each month for the last N months
	KeepMonthlyForMonths int `json:"keep_monthly_for_months"`
}

// DefaultRetentionPolicy returns the default retention policy.
func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		MinCount:             3,
		MaxCount:             50,
		MaxAgeDays:           90,
		KeepRecentHours:      24,
		KeepDailyForDays:     7,
		KeepWeeklyForWeeks:   4,
		KeepMonthlyForMonths: 6,
	}
}

// DefaultConfig returns the default configuration for dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:              dir,
		Compress:         true,
		CompressionLevel: gzip.DefaultCompression,
		Retention:        DefaultRetentionPolicy(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("backup directory is required")
	}
	if c.Compress && (c.CompressionLevel < gzip.HuffmanOnly || c.CompressionLevel > gzip.BestCompression) {
		return fmt.Errorf("invalid compression level: %d", c.CompressionLevel)
	}
	r := c.Retention
	if r.MinCount < 0 || r.MaxCount < 0 || r.MaxAgeDays < 0 {
		return errors.New("retention counts must not be negative")
	}
	if r.MaxCount > 0 && r.MinCount > r.MaxCount {
		return fmt.Errorf("retention min_count %d exceeds max_count %d", r.MinCount, r.MaxCount)
	}
	return nil
}

// ensureDir creates the backup directory with restricted permissions.
func (c *Config) ensureDir() error {
	if err := os.MkdirAll(c.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return nil
}
