// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

// Package main is snapctl, the offline Snapgraph client. It runs the
// discovery engine directly against a record store directory or a JSON
// corpus file, without a running server.
//
//	snapctl --store /data/snapgraph import screenshots.json
//	snapctl --store /data/snapgraph recommend shot-0042 --limit 5
//	snapctl --corpus screenshots.json clusters --format human
//	snapctl --store /data/snapgraph backup create --dir /data/snapgraph-backups
//	snapctl --store /data/snapgraph backup restore <backup-id> --dir /data/snapgraph-backups
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
