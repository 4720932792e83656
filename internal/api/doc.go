// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package api provides the HTTP REST API layer for Snapgraph.

It exposes the record store and the discovery engine over JSON, and streams
discovery events to WebSocket clients.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers backed by narrow store and engine interfaces
  - Response formatting: a single success/error envelope with metadata
  - Rate limiting: per-IP limits via httprate, tighter on writes and upgrades
  - CORS: go-chi/cors, configured with explicit origins
  - Compression: gzip of JSON responses via chi's Compress, except /ws

Endpoints:

1. Health (/api/v1/health):
  - / reports store connectivity, record count and analysis status
  - /live and /ready for orchestrator probes

2. Records (/api/v1/records):
  - PUT / imports a batch of records and requests a cluster refresh
  - GET /{id} returns one record
  - GET /{id}/recommendations ranks related records for a source

3. Discovery (/api/v1/):
  - GET clusters returns the last published content clusters
  - POST clusters/refresh requests an on-demand clustering pass
  - GET state, profile and settings expose engine internals

4. WebSocket (/api/v1/ws):
  - analysis_started, analysis_completed, analysis_failed, clusters_updated

Every response uses the envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","request_id":"..."}}

Errors carry a stable code and never the underlying error text:

	{"status":"error","data":null,"metadata":{...},"error":{"code":"NOT_FOUND","message":"Record not found"}}

Request metrics are exported on /metrics with the route pattern as the
endpoint label. The OpenAPI document is served at /swagger/doc.json with
Swagger UI under /swagger/.
*/
package api
