// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package main is the entry point for the Snapgraph server.

Snapgraph stores screenshot records (extracted text, tags, visual features,
capture time) and relates them: it ranks related screenshots for a source
record and groups the corpus into content clusters.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("snapgraph")
	├── DataSupervisor ("data-layer")
	│   ├── Store maintenance (BadgerDB value log GC)
	│   ├── Event forwarder (Watermill bus to WebSocket hub)
	│   └── Backup service (scheduled snapshots and retention, optional)
	├── AnalysisSupervisor ("analysis-layer")
	│   ├── Analysis service (scheduled and on-demand clustering)
	│   └── WebSocket hub
	└── APISupervisor ("api-layer")
	    └── HTTP server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and an optional YAML file
 2. Logging: zerolog with JSON/console output modes
 3. Record store: BadgerDB, on disk or in memory
 4. Record provider: circuit breaker (gobreaker) around the store
 5. Event bus: Watermill GoChannel carrying discovery events
 6. Discovery engine: matchers, fusion scoring, clustering
 7. Backup manager: gzip snapshots of the record store, when enabled
 8. Supervisor tree and HTTP server

# Configuration

Priority: environment variables > config file > defaults

	SNAPGRAPH_HTTP_PORT=8470              # HTTP listen port
	SNAPGRAPH_STORE_PATH=/data/snapgraph  # BadgerDB directory
	SNAPGRAPH_STORE_IN_MEMORY=false       # keep records in memory only
	SNAPGRAPH_CLUSTER_INTERVAL=15m        # scheduled clustering period
	SNAPGRAPH_REFRESH_INTERVAL=30s        # minimum spacing of on-demand refreshes
	SNAPGRAPH_CORS_ORIGINS=*              # comma separated
	SNAPGRAPH_BACKUP_ENABLED=true         # scheduled backups
	SNAPGRAPH_BACKUP_DIR=/data/snapgraph-backups
	SNAPGRAPH_LOG_LEVEL=info              # trace, debug, info, warn, error
	SNAPGRAPH_LOG_FORMAT=json             # json or console
	CONFIG_PATH=/etc/snapgraph/config.yaml

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
its shutdown timeout, the remaining services stop, and the event bus and
record store are closed last.
*/
package main
