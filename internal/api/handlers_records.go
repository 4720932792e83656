// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/store"
)

// ImportRequest is the body of PUT /api/v1/records.
type ImportRequest struct {
	Records []discovery.Record `json:"records" validate:"required,min=1,max=10000,dive"`
}

// ImportResponse is returned after a successful import.
type ImportResponse struct {
	Imported         int  `json:"imported"`
	RefreshRequested bool `json:"refresh_requested"`
}

// RecommendationsRequest holds the validated parameters of a recommendation request.
type RecommendationsRequest struct {
	RecordID string `validate:"record_id"`
	Limit    int    `validate:"gte=1,lte=500"`
}

// PutRecords handles PUT /api/v1/records.
// Records are validated as a batch and written in one transaction, replacing
// any stored record with the same ID. A clustering pass is requested
// afterwards unless refreshes are currently throttled.
//
// @Summary Import screenshot records
// @Description Stores a batch of records, replacing records with the same ID, and requests a clustering pass
// @Tags Records
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Records to import"
// @Success 200 {object} APIResponse{data=ImportResponse} "Records imported"
// @Failure 400 {object} APIResponse "Invalid request body"
// @Failure 413 {object} APIResponse "Request body too large"
// @Failure 500 {object} APIResponse "Store error"
// @Router /records [put]
func (h *Handler) PutRecords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// go-json hides the MaxBytesError behind EOF, so read first and decode after
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxImportBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large", nil)
			return
		}
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Failed to read request body", nil)
		return
	}

	var req ImportRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	if err := h.store.PutRecords(r.Context(), req.Records); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeStoreError, "Failed to store records", err)
		return
	}

	resp := ImportResponse{Imported: len(req.Records)}
	if h.clusters != nil {
		resp.RefreshRequested = h.clusters.Trigger() == nil
	}

	logging.Ctx(r.Context()).Info().
		Int("records", resp.Imported).
		Bool("refresh_requested", resp.RefreshRequested).
		Msg("records imported")

	respondSuccess(w, r, http.StatusOK, resp, start)
}

// GetRecord handles GET /api/v1/records/{id}.
//
// @Summary Get a record
// @Tags Records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} APIResponse{data=discovery.Record} "Record"
// @Failure 404 {object} APIResponse "Record not found"
// @Router /records/{id} [get]
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetRecord(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, id, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, rec, start)
}

// Recommendations handles GET /api/v1/records/{id}/recommendations?limit=N.
// Runs one recommendation cycle for the record against every other stored
// record. limit defaults to the engine's MaxRecommendations.
//
// @Summary Recommend related records
// @Description Runs one recommendation cycle for the record against every other stored record
// @Tags Records
// @Produce json
// @Param id path string true "Record ID"
// @Param limit query int false "Maximum recommendations (1-500)"
// @Success 200 {object} APIResponse{data=discovery.RecommendationResult} "Recommendations"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 404 {object} APIResponse "Record not found"
// @Failure 504 {object} APIResponse "Recommendation timed out"
// @Router /records/{id}/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := RecommendationsRequest{
		RecordID: chi.URLParam(r, "id"),
		Limit:    getIntParam(r, "limit", h.engine.Settings().MaxRecommendations),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	source, err := h.source.Source(ctx, req.RecordID)
	if err != nil {
		h.respondLookupError(w, r, req.RecordID, err)
		return
	}

	pool := h.source.CandidatePool(ctx, req.RecordID)

	result, err := h.engine.GenerateRecommendations(ctx, source, pool, req.Limit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Recommendation timed out", err)
			return
		}
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Recommendation canceled", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("record_id", sanitizeLogValue(req.RecordID)).
		Int("pool", len(pool)).
		Float64("confidence", result.Confidence).
		Msg("recommendations served")

	respondSuccess(w, r, http.StatusOK, result, start)
}

// respondLookupError maps record lookup failures to HTTP statuses.
func (h *Handler) respondLookupError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Record not found: "+sanitizeLogValue(id), nil)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Record store temporarily unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, ErrCodeTimeout, "Record lookup timed out", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeStoreError, "Failed to load record", err)
	}
}
