// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package logging provides the process-wide zerolog logger for Snapgraph.

Every component logs structured JSON through zerolog. Libraries that expect
another logging interface are bridged onto the same logger:

  - SlogHandler adapts zerolog to log/slog for the suture supervisor
    (through sutureslog).
  - WatermillAdapter adapts zerolog to watermill.LoggerAdapter for the
    discovery event bus.

# Usage

	logging.Init(logging.Config{Level: "debug", Format: "console"})

	logging.Info().Str("addr", addr).Msg("server listening")
	logger := logging.WithComponent("store")
	logging.Ctx(ctx).Warn().Err(err).Msg("record lookup failed")

Components receive a zerolog.Logger by value in their constructors and add a
component field themselves; the global accessors are for main packages and
middleware.

# Request Correlation

The API middleware stores a request ID in the request context. Ctx adds the
request and correlation IDs found in a context to every entry it produces.

# Configuration

Config mirrors the logging section of the application config:

  - Level: trace, debug, info, warn, error (default: info)
  - Format: json or console (default: json)
  - Caller: include file:line (default: false)

Setting SNAPGRAPH_QUIET_LOGS=1 disables logging before Init runs, which keeps
benchmark and fuzz output readable.
*/
package logging
