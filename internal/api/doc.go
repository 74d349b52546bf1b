// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package api provides the HTTP interface of the serve command.

Endpoints:

  - POST /api/v1/recommend: body {"history": [...], "catalog": [...]}. Trains
    on the history and responds 200 with a JSON array of recommended catalog
    objects. Responds 400 for a malformed body, 413 when the body exceeds the
    configured limit and 422 when no history movie is usable.
  - GET /health: {"status":"ok","engine":{...}} with the run counters.
  - GET /metrics: Prometheus exposition of the metrics registry.

Every request gets an X-Request-ID (chi RequestID) that is copied into the
logging context. CORS (go-chi/cors) applies to all routes; the per-IP rate
limit (go-chi/httprate) applies to /api/v1 only.

Usage:

	engine, _ := recommend.NewEngine(cfg, logger)
	handler := api.NewHandler(engine, cfg.Server.MaxBodyBytes)
	router := api.NewRouter(handler, api.NewMiddlewareFromConfig(&cfg.Server))
*/
package api
