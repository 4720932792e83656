// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/snapgraph/internal/backup"
	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/supervisor"
)

// Config holds all application configuration.
type Config struct {
	Discovery  DiscoveryConfig  `koanf:"discovery"`
	Analysis   AnalysisConfig   `koanf:"analysis"`
	Store      StoreConfig      `koanf:"store"`
	Server     ServerConfig     `koanf:"server"`
	Events     EventsConfig     `koanf:"events"`
	Backup     BackupConfig     `koanf:"backup"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DiscoveryConfig configures the recommendation engine.
type DiscoveryConfig struct {
	// Enabled turns content discovery on or off.
	// Default: true
	Enabled bool `koanf:"enabled"`

	// TemporalAnalysis enables temporal pattern matching.
	// Default: true
	TemporalAnalysis bool `koanf:"temporal_analysis"`

	// SemanticSimilarity enables semantic matching.
	// Default: true
	SemanticSimilarity bool `koanf:"semantic_similarity"`

	// VisualSimilarity enables visual matching.
	// Default: true
	VisualSimilarity bool `koanf:"visual_similarity"`

	// MaxRecommendations caps related content per request.
	// Default: 20
	MaxRecommendations int `koanf:"max_recommendations" validate:"gte=1,lte=500"`

	// MinimumSimilarityScore is the inclusion threshold.
	// Default: 0.6
	MinimumSimilarityScore float64 `koanf:"minimum_similarity_score" validate:"gte=0,lte=1"`

	// TemporalWindowDays is where temporal proximity reaches zero.
	// Default: 30
	TemporalWindowDays float64 `koanf:"temporal_window_days" validate:"gt=0"`

	// RelatedSampleSize is the pool prefix scanned for related content.
	// Default: 100
	RelatedSampleSize int `koanf:"related_sample_size" validate:"gte=1"`

	// SignalSampleSize is the pool prefix scanned by the other matchers.
	// Default: 50
	SignalSampleSize int `koanf:"signal_sample_size" validate:"gte=1"`

	// Fusion holds the similarity signal weights.
	Fusion FusionConfig `koanf:"fusion"`

	// Confidence holds the match category weights.
	Confidence ConfidenceConfig `koanf:"confidence"`

	// CacheEnabled turns on the pairwise score cache.
	// Default: true
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheMaxEntries is the score cache capacity.
	// Default: 50000
	CacheMaxEntries int `koanf:"cache_max_entries" validate:"gte=0"`
}

// FusionConfig weights the similarity signals.
type FusionConfig struct {
	Text     float64 `koanf:"text" validate:"gte=0"`
	Visual   float64 `koanf:"visual" validate:"gte=0"`
	Temporal float64 `koanf:"temporal" validate:"gt=0"`
	Tags     float64 `koanf:"tags" validate:"gte=0"`
}

// ConfidenceConfig weights the match categories.
type ConfidenceConfig struct {
	Related  float64 `koanf:"related" validate:"gte=0,lte=1"`
	Temporal float64 `koanf:"temporal" validate:"gte=0,lte=1"`
	Semantic float64 `koanf:"semantic" validate:"gte=0,lte=1"`
	Visual   float64 `koanf:"visual" validate:"gte=0,lte=1"`
	Workflow float64 `koanf:"workflow" validate:"gte=0,lte=1"`
}

// AnalysisConfig configures the background clustering service and the
// record provider it reads from.
type AnalysisConfig struct {
	// ClusterOnStartup runs a clustering pass as soon as the service starts.
	// Default: true
	ClusterOnStartup bool `koanf:"cluster_on_startup"`

	// ClusterInterval is the time between scheduled clustering passes.
	// Default: 15m
	ClusterInterval time.Duration `koanf:"cluster_interval" validate:"gte=1s"`

	// RefreshInterval is the minimum time between on-demand refreshes.
	// Default: 30s
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gte=0s"`

	// RefreshBurst is how many on-demand refreshes may run back to back.
	// Default: 1
	RefreshBurst int `koanf:"refresh_burst" validate:"gte=1"`

	// RequestTimeout bounds a single recommendation or clustering run.
	// Default: 30s
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`

	// BreakerMaxFailures is the consecutive provider failures that open the breaker.
	// Default: 5
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures" validate:"gte=1"`

	// BreakerTimeout is how long the breaker stays open.
	// Default: 30s
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// StoreConfig configures the BadgerDB record store.
type StoreConfig struct {
	// Path is the BadgerDB directory.
	// Default: /data/snapgraph
	Path string `koanf:"path"`

	// InMemory keeps all records in memory. Path is ignored.
	// Default: false
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every write.
	// Default: false
	SyncWrites bool `koanf:"sync_writes"`

	// GCInterval is the time between value log GC runs.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval" validate:"gte=1s"`

	// GCRatio is the discard ratio a value log file needs before it is rewritten.
	// Default: 0.5
	GCRatio float64 `koanf:"gc_ratio" validate:"gt=0,lt=1"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Host is the bind address.
	// Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port.
	// Default: 8470
	Port int `koanf:"port" validate:"gte=1,lte=65535"`

	// ReadTimeout bounds reading a request.
	// Default: 15s
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"gt=0"`

	// WriteTimeout bounds writing a response.
	// Default: 60s
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// CORSOrigins lists allowed origins. "*" allows any.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the request budget per client per window.
	// Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"gte=1"`

	// RateLimitWindow is the rate limit window.
	// Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`

	// RateLimitDisabled turns rate limiting off.
	// Default: false
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	// Topic is the topic discovery events are published on.
	// Default: discovery.events
	Topic string `koanf:"topic" validate:"required"`

	// BufferSize is the per-subscriber channel buffer.
	// Default: 256
	BufferSize int64 `koanf:"buffer_size" validate:"gte=0"`
}

// BackupConfig configures scheduled store backups.
type BackupConfig struct {
	// Enabled runs the backup service.
	// Default: true
	Enabled bool `koanf:"enabled"`

	// Dir holds backup files.
	// Default: /data/snapgraph-backups
	Dir string `koanf:"dir"`

	// Interval is the time between scheduled backups.
	// Default: 24h
	Interval time.Duration `koanf:"interval" validate:"gte=1m"`

	// Compress gzips backup files.
	// Default: true
	Compress bool `koanf:"compress"`

	// CompressionLevel is the gzip level, -2 (Huffman only) to 9.
	// Default: -1 (library default)
	CompressionLevel int `koanf:"compression_level" validate:"gte=-2,lte=9"`

	// Default: 3
	MinCount int `koanf:"min_count" validate:"gte=0"`
	// Default: 50
	MaxCount int `koanf:"max_count" validate:"gte=0"`
	// Default: 90
	MaxAgeDays int `koanf:"max_age_days" validate:"gte=0"`
	// Default: 24
	KeepRecentHours int `koanf:"keep_recent_hours" validate:"gte=0"`
	// Default: 7
	KeepDailyForDays int `koanf:"keep_daily_for_days" validate:"gte=0"`
	// Default: 4
	KeepWeeklyForWeeks int `koanf:"keep_weekly_for_weeks" validate:"gte=0"`
	// Default: 6
	KeepMonthlyForMonths int `koanf:"keep_monthly_for_months" validate:"gte=0"`
}

// SupervisorConfig configures the suture tree.
type SupervisorConfig struct {
	// Default: 5
	FailureThreshold float64 `koanf:"failure_threshold" validate:"gt=0"`
	// Default: 30
	FailureDecay float64 `koanf:"failure_decay" validate:"gt=0"`
	// Default: 15s
	FailureBackoff time.Duration `koanf:"failure_backoff" validate:"gt=0"`
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	// Default: info
	Level string `koanf:"level" validate:"log_level"`
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`
	// Default: false
	Caller bool `koanf:"caller"`
}

// Settings converts the discovery section into engine settings.
func (c *DiscoveryConfig) Settings() *discovery.Settings {
	return &discovery.Settings{
		EnableContentDiscovery:   c.Enabled,
		EnableTemporalAnalysis:   c.TemporalAnalysis,
		EnableSemanticSimilarity: c.SemanticSimilarity,
		EnableVisualSimilarity:   c.VisualSimilarity,
		MaxRecommendations:       c.MaxRecommendations,
		MinimumSimilarityScore:   c.MinimumSimilarityScore,
		TemporalWindowDays:       c.TemporalWindowDays,
		Sampling: discovery.SamplingLimits{
			RelatedContent: c.RelatedSampleSize,
			Signals:        c.SignalSampleSize,
		},
		FusionWeights: discovery.FusionWeights{
			Text:     c.Fusion.Text,
			Visual:   c.Fusion.Visual,
			Temporal: c.Fusion.Temporal,
			Tags:     c.Fusion.Tags,
		},
		ConfidenceWeights: discovery.ConfidenceWeights{
			Related:  c.Confidence.Related,
			Temporal: c.Confidence.Temporal,
			Semantic: c.Confidence.Semantic,
			Visual:   c.Confidence.Visual,
			Workflow: c.Confidence.Workflow,
		},
		Cache: discovery.CacheSettings{
			Enabled:    c.CacheEnabled,
			MaxEntries: c.CacheMaxEntries,
		},
	}
}

// ManagerConfig converts the backup section.
func (c *BackupConfig) ManagerConfig() backup.Config {
	return backup.Config{
		Dir:              c.Dir,
		Compress:         c.Compress,
		CompressionLevel: c.CompressionLevel,
		Retention: backup.RetentionPolicy{
			MinCount:             c.MinCount,
			MaxCount:             c.MaxCount,
			MaxAgeDays:           c.MaxAgeDays,
			KeepRecentHours:      c.KeepRecentHours,
			KeepDailyForDays:     c.KeepDailyForDays,
			KeepWeeklyForWeeks:   c.KeepWeeklyForWeeks,
			KeepMonthlyForMonths: c.KeepMonthlyForMonths,
		},
	}
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TreeConfig converts the supervisor section.
func (c *SupervisorConfig) TreeConfig() supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		ShutdownTimeout:  c.ShutdownTimeout,
	}
}

// Logging converts the logging section. Output stays at its default.
func (c *LoggingConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}

// String summarizes the config for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s store=%s in_memory=%t discovery=%t cluster_interval=%s backup=%t",
		c.Server.Addr(), c.Store.Path, c.Store.InMemory, c.Discovery.Enabled, c.Analysis.ClusterInterval, c.Backup.Enabled)
}
