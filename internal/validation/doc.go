// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is shared by the process; it caches struct
metadata, so repeated validation of records and request bodies is cheap.

Custom tags:

  - record_id: 1-256 printable characters, no whitespace
  - log_level: a level name accepted by the logging package

Field names in messages come from json tags, and nested fields are reported
by path:

	type importRequest struct {
	    Records []discovery.Record `json:"records" validate:"required,min=1,dive"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // apiErr.Message: "records[0].id must be 1-256 printable characters without whitespace"
	}

ValidateStruct returns a typed *RequestValidationError. Compare it against nil
before converting it to error, or the interface will be non-nil.
*/
package validation
