// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return out
}

func TestSlogHandler_Levels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug - 4, "trace"},
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
		{slog.LevelError + 4, "error"},
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer Init(DefaultConfig())

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(NewSlogHandler(zerolog.New(&buf).Level(zerolog.TraceLevel)))
		logger.Log(context.Background(), tt.level, "msg")

		if buf.Len() == 0 {
			t.Errorf("level %v: nothing written", tt.level)
			continue
		}
		if got := decodeLine(t, &buf)["level"]; got != tt.want {
			t.Errorf("level %v: got %v, want %s", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestSlogHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.With("service", "http-server").
		WithGroup("event").
		Info("service restarted",
			"attempt", 3,
			"healthy", false,
			"backoff", 2*time.Second,
			"err", errors.New("listen failed"),
			slog.Group("split", "threshold", 5.5),
		)

	line := decodeLine(t, &buf)
	want := map[string]any{
		"service":               "http-server",
		"event.attempt":         float64(3),
		"event.healthy":         false,
		"event.err":             "listen failed",
		"event.split.threshold": 5.5,
		"message":               "service restarted",
	}
	for key, value := range want {
		if line[key] != value {
			t.Errorf("%s = %v (%T), want %v", key, line[key], line[key], value)
		}
	}
	if _, ok := line["event.backoff"]; !ok {
		t.Error("event.backoff missing")
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	NewSlogLogger("supervisor").Warn("service failed to stop")

	if !strings.Contains(buf.String(), `"component":"supervisor"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
