// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/movies"
	"github.com/tomtom215/cinerec/internal/recommend"
)

// DefaultMaxBodyBytes limits a recommend request body when no limit is set.
const DefaultMaxBodyBytes int64 = 10 << 20

// requestTimeout bounds a single train and predict run.
const requestTimeout = 30 * time.Second

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	History []movies.Movie `json:"history"`
	Catalog []movies.Movie `json:"catalog"`
}

// Handler serves the recommendation endpoints. Each request trains its own
// model; nothing is shared between requests except the engine settings.
type Handler struct {
	engine       *recommend.Engine
	maxBodyBytes int64
}

// NewHandler creates a handler backed by engine.
func NewHandler(engine *recommend.Engine, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		engine:       engine,
		maxBodyBytes: maxBodyBytes,
	}
}

// Recommend handles POST /api/v1/recommend. It trains on the posted history
// and responds with the recommended catalog objects as a JSON array.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "failed to read request body")
		return
	}

	var req RecommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "malformed request body: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.engine.Run(ctx, req.History, req.Catalog)
	if err != nil {
		h.writeRunError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := movies.Encode(w, result.Recommendations); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write recommendations")
	}
}

func (h *Handler) writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrEmptyTrainingSet):
		writeError(w, r, http.StatusUnprocessableEntity, ErrCodeUnprocessable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeRequestCancelled, "recommendation run cancelled")
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Msg("Recommendation run failed")
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "recommendation run failed")
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Engine recommend.Metrics `json:"engine"`
}

// Health handles GET /health and reports the engine counters.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Engine: h.engine.Metrics(),
	})
}
