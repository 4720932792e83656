// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/snapgraph/config.yaml",
	"/etc/snapgraph/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix prefixes every Snapgraph environment variable.
const EnvPrefix = "SNAPGRAPH_"

func defaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Enabled:                true,
			TemporalAnalysis:       true,
			SemanticSimilarity:     true,
			VisualSimilarity:       true,
			MaxRecommendations:     20,
			MinimumSimilarityScore: 0.6,
			TemporalWindowDays:     30,
			RelatedSampleSize:      100,
			SignalSampleSize:       50,
			Fusion: FusionConfig{
				Text:     0.4,
				Visual:   0.3,
				Temporal: 0.2,
				Tags:     0.1,
			},
			Confidence: ConfidenceConfig{
				Related:  0.4,
				Temporal: 0.2,
				Semantic: 0.2,
				Visual:   0.1,
				Workflow: 0.1,
			},
			CacheEnabled:    true,
			CacheMaxEntries: 50000,
		},
		Analysis: AnalysisConfig{
			ClusterOnStartup:   true,
			ClusterInterval:    15 * time.Minute,
			RefreshInterval:    30 * time.Second,
			RefreshBurst:       1,
			RequestTimeout:     30 * time.Second,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Store: StoreConfig{
			Path:       "/data/snapgraph",
			GCInterval: 10 * time.Minute,
			GCRatio:    0.5,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8470,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Events: EventsConfig{
			Topic:      "discovery.events",
			BufferSize: 256,
		},
		Backup: BackupConfig{
			Enabled:              true,
			Dir:                  "/data/snapgraph-backups",
			Interval:             24 * time.Hour,
			Compress:             true,
			CompressionLevel:     -1,
			MinCount:             3,
			MaxCount:             50,
			MaxAgeDays:           90,
			KeepRecentHours:      24,
			KeepDailyForDays:     7,
			KeepWeeklyForWeeks:   4,
			KeepMonthlyForMonths: 6,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from, in increasing priority:
//
//  1. built-in defaults
//  2. a YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. environment variables
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are keys that accept comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}

		var values []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		if len(values) == 0 {
			continue
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names, without EnvPrefix and
// lowercased, to config keys.
var envMappings = map[string]string{
	"discovery_enabled":                  "discovery.enabled",
	"discovery_temporal_analysis":        "discovery.temporal_analysis",
	"discovery_semantic_similarity":      "discovery.semantic_similarity",
	"discovery_visual_similarity":        "discovery.visual_similarity",
	"discovery_max_recommendations":      "discovery.max_recommendations",
	"discovery_minimum_similarity_score": "discovery.minimum_similarity_score",
	"discovery_temporal_window_days":     "discovery.temporal_window_days",
	"discovery_related_sample_size":      "discovery.related_sample_size",
	"discovery_signal_sample_size":       "discovery.signal_sample_size",
	"discovery_cache_enabled":            "discovery.cache_enabled",
	"discovery_cache_max_entries":        "discovery.cache_max_entries",

	"cluster_on_startup":   "analysis.cluster_on_startup",
	"cluster_interval":     "analysis.cluster_interval",
	"refresh_interval":     "analysis.refresh_interval",
	"refresh_burst":        "analysis.refresh_burst",
	"request_timeout":      "analysis.request_timeout",
	"breaker_max_failures": "analysis.breaker_max_failures",
	"breaker_timeout":      "analysis.breaker_timeout",

	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_sync_writes": "store.sync_writes",
	"store_gc_interval": "store.gc_interval",
	"store_gc_ratio":    "store.gc_ratio",

	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_read_timeout":   "server.read_timeout",
	"http_write_timeout":  "server.write_timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"events_topic":       "events.topic",
	"events_buffer_size": "events.buffer_size",

	"backup_enabled":                 "backup.enabled",
	"backup_dir":                     "backup.dir",
	"backup_interval":                "backup.interval",
	"backup_compress":                "backup.compress",
	"backup_compression_level":       "backup.compression_level",
	"backup_min_count":               "backup.min_count",
	"backup_max_count":               "backup.max_count",
	"backup_max_age_days":            "backup.max_age_days",
	"backup_keep_recent_hours":       "backup.keep_recent_hours",
	"backup_keep_daily_for_days":     "backup.keep_daily_for_days",
	"backup_keep_weekly_for_weeks":   "backup.keep_weekly_for_weeks",
	"backup_keep_monthly_for_months": "backup.keep_monthly_for_months",

	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// legacyEnv are unprefixed names honored for container conventions.
var legacyEnv = map[string]string{
	"log_level": "logging.level",
	"http_port": "server.port",
}

// envTransformFunc maps an environment variable to a config key. Unknown
// variables map to "" and are ignored by koanf.
func envTransformFunc(key string) string {
	if rest, ok := strings.CutPrefix(key, EnvPrefix); ok {
		return envMappings[strings.ToLower(rest)]
	}
	return legacyEnv[strings.ToLower(key)]
}
