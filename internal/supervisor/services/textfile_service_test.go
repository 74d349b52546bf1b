// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingWriter struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (w *recordingWriter) write(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths = append(w.paths, path)
	return w.err
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.paths)
}

func TestTextfileService_WritesPeriodicallyAndOnShutdown(t *testing.T) {
	w := &recordingWriter{}
	svc := NewTextfileService("/tmp/cinerec.prom", 10*time.Millisecond, w.write, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for w.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("textfile was not written periodically")
		}
		time.Sleep(5 * time.Millisecond)
	}
	before := w.count()
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if w.count() != before+1 {
		t.Errorf("writes = %d, want a final write after %d", w.count(), before)
	}
	if w.paths[0] != "/tmp/cinerec.prom" {
		t.Errorf("path = %q", w.paths[0])
	}
}

func TestTextfileService_WriteErrorStopsService(t *testing.T) {
	w := &recordingWriter{err: errors.New("read-only file system")}
	svc := NewTextfileService("x.prom", time.Millisecond, w.write, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, w.err) {
		t.Errorf("Serve() error = %v, want write error", err)
	}
}

func TestNewTextfileService_DefaultInterval(t *testing.T) {
	svc := NewTextfileService("x.prom", 0, func(string) error { return nil }, zerolog.Nop())
	if svc.interval != DefaultTextfileInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultTextfileInterval)
	}
	if svc.String() != "metrics-textfile" {
		t.Errorf("String() = %q", svc.String())
	}
}
