// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package supervisor provides process supervision for Snapgraph using suture v4.

Every long-running component runs as a suture.Service inside a three-layer
tree, so a crashed component is restarted without taking the others down.

# Overview

	RootSupervisor ("snapgraph")
	├── DataSupervisor ("data-layer")
	│   ├── StoreMaintenanceService
	│   ├── EventForwarderService
	│   └── BackupService (when backup.enabled)
	├── AnalysisSupervisor ("analysis-layer")
	│   ├── AnalysisService
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing clustering pass leaves the API serving recommendations, and a
restarting forwarder only drops live notifications.

# Restart Policy

FailureThreshold, FailureDecay and FailureBackoff map directly onto
suture.Spec. Once a layer's decayed failure count passes the threshold it
waits FailureBackoff before restarting anything. ShutdownTimeout bounds how
long each service gets to return after its context is canceled;
UnstoppedServiceReport lists the ones that did not.

# Logging

Supervisor events (service start, panic, restart, backoff) are emitted
through sutureslog into the slog logger passed to NewSupervisorTree. The
server builds that logger with logging.NewSlogLogger so events share the
zerolog output.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), cfg.Supervisor.TreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, timeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# See Also

  - internal/supervisor/services: service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
