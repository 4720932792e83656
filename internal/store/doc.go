// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package store persists screenshot records in BadgerDB.

RecordStore is the production discovery.RecordProvider. Records are stored
as JSON under "record:<id>" keys. ListRecords returns the corpus ordered by
capture time, then ID, so the engine sees the same pool order on every call.

	s, err := store.Open(store.Config{Path: "/data/snapgraph"}, logger)
	if err != nil {
	    return err
	}
	defer s.Close()

	err = s.PutRecords(ctx, records) // validated, single batch
	pool, err := s.ListRecords(ctx)

Writes validate every record before anything is written. Operations are
timed into the snapgraph_store_operation_duration_seconds histogram.

RunGC reclaims value log space and is driven by a supervised maintenance
service in the data layer.
*/
package store
