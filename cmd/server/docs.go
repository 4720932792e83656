// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

// Package main provides the Snapgraph HTTP server
//
// @title Snapgraph API
// @version 1.0
// @description Screenshot content relationships: related-record recommendations and content clusters
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses use the standard envelope with "status": "error" and an error object carrying code and message.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/snapgraph/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8470
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness endpoints
//
// @tag.name Records
// @tag.description Record import, lookup, and recommendations
//
// @tag.name Discovery
// @tag.description Clusters, discovery state, learning profile, and settings
//
// @tag.name Realtime
// @tag.description WebSocket stream of discovery events
package main
