// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package config loads Snapgraph configuration with koanf.

# Sources

Configuration is layered, later sources overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, or the first of config.yaml, config.yml,
    /etc/snapgraph/config.yaml, /etc/snapgraph/config.yml
 3. Environment variables prefixed with SNAPGRAPH_

# Sections

  - discovery: engine toggles, thresholds, sampling, weights, score cache
  - analysis: background clustering schedule, refresh throttling, provider breaker
  - store: BadgerDB location
  - server: HTTP listener, CORS, rate limiting
  - events: event bus topic and buffering
  - backup: scheduled snapshots, compression, retention policy
  - supervisor: suture restart policy
  - logging: level, format, caller

# Environment Variables

A selection; see envMappings for the full table.

  - SNAPGRAPH_HTTP_PORT: listen port (default: 8470)
  - SNAPGRAPH_STORE_PATH: BadgerDB directory (default: /data/snapgraph)
  - SNAPGRAPH_STORE_IN_MEMORY: keep records in memory (default: false)
  - SNAPGRAPH_DISCOVERY_ENABLED: engine on/off (default: true)
  - SNAPGRAPH_DISCOVERY_MINIMUM_SIMILARITY_SCORE: threshold (default: 0.6)
  - SNAPGRAPH_CLUSTER_INTERVAL: clustering schedule (default: 15m)
  - SNAPGRAPH_REFRESH_INTERVAL: minimum gap between on-demand refreshes (default: 30s)
  - SNAPGRAPH_CORS_ORIGINS: comma-separated origins (default: *)
  - SNAPGRAPH_BACKUP_ENABLED: scheduled backups (default: true)
  - SNAPGRAPH_BACKUP_DIR: backup directory (default: /data/snapgraph-backups)
  - SNAPGRAPH_BACKUP_INTERVAL: backup schedule (default: 24h)
  - SNAPGRAPH_LOG_LEVEL: log level (default: info)

LOG_LEVEL and HTTP_PORT are also read without the prefix.

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}
	engine, err := discovery.NewEngine(cfg.Discovery.Settings(), logging.WithComponent("discovery"))
*/
package config
