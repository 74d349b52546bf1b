// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/cinerec/internal/metrics"
	"github.com/tomtom215/cinerec/internal/recommend"
)

func newTestRouter(t *testing.T, maxBody int64, mwConfig *MiddlewareConfig) http.Handler {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.Forest.Trees = 10
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	require.NoError(t, err)
	return NewRouter(NewHandler(engine, maxBody), NewMiddleware(mwConfig))
}

// likedBody builds a request where every history movie is liked.
func likedBody(catalogSize int) string {
	var history, catalog []string
	for i := 0; i < 5; i++ {
		history = append(history, fmt.Sprintf(`{"title":"h%d","genres":["Drama"],"rating":4,"year":%d,"liked":1}`, i, 1990+i))
	}
	for i := 0; i < catalogSize; i++ {
		catalog = append(catalog, fmt.Sprintf(`{"title":"c%d","genres":["Comedy"],"rating":"3.5","year":2001,"extra":%d}`, i, i))
	}
	return fmt.Sprintf(`{"history":[%s],"catalog":[%s]}`, strings.Join(history, ","), strings.Join(catalog, ","))
}

func postRecommend(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRecommend_OK(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	rec := postRecommend(router, likedBody(12))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 10)
	assert.Equal(t, "c0", got[0]["title"])
	assert.Equal(t, "3.5", got[0]["rating"], "catalog objects are returned as received")
	assert.Equal(t, float64(0), got[0]["extra"])
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	rec := postRecommend(router, likedBody(0))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestRecommend_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		maxBody  int64
		wantCode int
		wantErr  string
	}{
		{"not json", "history please", 0, http.StatusBadRequest, ErrCodeBadRequest},
		{"history not an array", `{"history": 5, "catalog": []}`, 0, http.StatusBadRequest, ErrCodeBadRequest},
		{"movie not an object", `{"history": ["x"], "catalog": []}`, 0, http.StatusBadRequest, ErrCodeBadRequest},
		{"no history", `{"catalog": []}`, 0, http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{"no labels", `{"history": [{"title":"a","rating":3,"year":2000}], "catalog": []}`, 0, http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{"too large", likedBody(50), 64, http.StatusRequestEntityTooLarge, ErrCodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.maxBody, nil)

			rec := postRecommend(router, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var resp struct {
				Error APIError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.Error.RequestID)
		})
	}
}

func TestRecommend_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommend", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Zero(t, resp.Engine.Runs)
	assert.True(t, resp.Engine.LastRunAt.IsZero())

	require.Equal(t, http.StatusOK, postRecommend(router, likedBody(1)).Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Engine.Runs)
	assert.Equal(t, int64(1), resp.Engine.Recommendations)
	assert.False(t, resp.Engine.LastRunAt.IsZero())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, 0, nil)
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/recommend", "200")
	before := testutil.ToFloat64(counter)

	require.Equal(t, http.StatusOK, postRecommend(router, likedBody(1)).Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(counter)-before)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cinerec_http_requests_total")
	assert.Contains(t, rec.Body.String(), "cinerec_runs_total")
}

func TestRateLimit(t *testing.T) {
	mw := DefaultMiddlewareConfig()
	mw.RateLimitRequests = 1
	mw.RateLimitWindow = time.Hour
	mw.RateLimitOnLimit = rateLimited
	router := newTestRouter(t, 0, mw)

	assert.Equal(t, http.StatusOK, postRecommend(router, likedBody(1)).Code)

	rec := postRecommend(router, likedBody(1))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeTooManyRequests)

	// Health is outside the limited group.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	health := httptest.NewRecorder()
	router.ServeHTTP(health, req)
	assert.Equal(t, http.StatusOK, health.Code)
}
