// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package services provides suture.Service wrappers for Snapgraph components.

Each wrapper adapts a component lifecycle (ticker loop, RunWithContext,
ListenAndServe) to suture's context-aware Serve method and names itself
through fmt.Stringer for supervisor logs.

# Available Services

Analysis (AnalysisService):
  - Clusters the record corpus on startup and on a schedule
  - Trigger requests an on-demand pass, throttled by golang.org/x/time/rate
  - Pending requests coalesce into one pass
  - Layer: analysis

Store Maintenance (StoreMaintenanceService):
  - Runs BadgerDB value log GC on an interval
  - GC failures are logged and retried on the next tick
  - Layer: data

Backup (BackupService):
  - Takes a scheduled backup.Manager snapshot on an interval
  - Applies the retention policy after each successful backup
  - Layer: data

WebSocket Hub (WebSocketHubService):
  - Wraps websocket.Hub.RunWithContext
  - Closes every client on shutdown
  - Layer: analysis

Event Forwarder (EventForwarderService):
  - Relays discovery events from the Watermill bus to the hub
  - A closed subscription returns an error so suture restarts it
  - Layer: data

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful Shutdown
  - Layer: api

# Usage Example

	tree, _ := supervisor.NewSupervisorTree(slogger, cfg.Supervisor.TreeConfig())

	tree.AddDataService(services.NewStoreMaintenanceService(recordStore, cfg.Store.GCInterval, logger))
	tree.AddDataService(services.NewEventForwarderService(websocket.NewForwarder(bus, hub, logger)))
	tree.AddDataService(services.NewBackupService(backups, cfg.Backup.Interval, logger))

	analysis := services.NewAnalysisService(engine, provider, analysisCfg, logger)
	tree.AddAnalysisService(analysis)
	tree.AddAnalysisService(services.NewWebSocketHubService(hub))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	_ = tree.Serve(ctx)

# Error Handling

Return values determine supervisor behavior:

	nil         -> service stopped cleanly
	error       -> service crashed, supervisor restarts it
	ctx.Err()   -> shutdown requested, normal termination

# See Also

  - internal/supervisor: the tree these services run in
  - internal/websocket: hub and forwarder
  - internal/store: the record store
  - internal/backup: snapshot and retention
*/
package services
