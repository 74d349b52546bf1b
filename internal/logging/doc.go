// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package logging provides centralized zerolog-based structured logging for Cinerec.
//
// Standard output carries the recommendation document, so every log line is
// written to standard error unless Config.Output says otherwise.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Int("history", len(history)).Msg("training started")
//	logging.Error().Err(err).Msg("recommendation failed")
//
//	// Context-aware logging (run and request IDs)
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("encoding catalog")
//
// # Configuration
//
// Levels: trace, debug, info, warn, error, fatal, panic, disabled (default: info).
// Formats: json, console (default: json).
//
// The level and format are normally set through the logging section of the
// configuration file or the CINEREC_LOGGING_LEVEL and CINEREC_LOGGING_FORMAT
// environment variables (see internal/config).
//
// # Component Loggers
//
//	engineLogger := logging.WithComponent("recommend")
//	engineLogger.Debug().Int("dropped", n).Msg("dropped incomplete rows")
//
// # Output Formats
//
// JSON Format:
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","component":"recommend","message":"model trained"}
//
// Console Format:
//
//	10:30:00 INF model trained component=recommend
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
package logging
