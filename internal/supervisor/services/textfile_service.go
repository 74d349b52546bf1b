// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTextfileInterval is how often the textfile is rewritten.
const DefaultTextfileInterval = 15 * time.Second

// TextfileService periodically writes the metrics registry to a file for
// node_exporter's textfile collector. The file is written once more on
// shutdown so the final counters are not lost.
type TextfileService struct {
	path     string
	interval time.Duration
	write    func(path string) error
	logger   zerolog.Logger
}

// NewTextfileService writes to path every interval using write, usually
// metrics.WriteTextfile.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTextfileService(path string, interval time.Duration, write func(string) error, logger zerolog.Logger) *TextfileService {
	if interval <= 0 {
		interval = DefaultTextfileInterval
	}
	return &TextfileService{
		path:     path,
		interval: interval,
		write:    write,
		logger:   logger.With().Str("component", "textfile").Str("path", path).Logger(),
	}
}

// Serve implements suture.Service. A failed write is returned so suture can
// restart the service with backoff.
func (s *TextfileService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.write(s.path); err != nil {
				s.logger.Warn().Err(err).Msg("final metrics textfile write failed")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := s.write(s.path); err != nil {
				return fmt.Errorf("write metrics textfile: %w", err)
			}
			s.logger.Trace().Msg("metrics textfile written")
		}
	}
}

// String names the service in supervisor logs.
func (s *TextfileService) String() string {
	return "metrics-textfile"
}
