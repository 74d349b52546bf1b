// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package main is the entry point for the cinerec command.
//
// cinerec trains a random forest on a user's viewing history and prints the
// catalog movies it predicts the user will like:
//
//	cinerec history.json catalog.json > recommendations.json
//
// Both inputs are JSON arrays of movie objects. History movies carry a
// "liked" flag; catalog movies do not. The output is a JSON array of at most
// ten catalog objects, written exactly as they appeared in the catalog.
//
// # Configuration
//
// Settings are layered, highest priority last:
//   - Built-in defaults
//   - Config file (--config, CINEREC_CONFIG, or ./cinerec.yaml)
//   - Environment variables (CINEREC_FOREST_TREES, CINEREC_LOG_LEVEL, ...)
//   - Command-line flags that were set explicitly
//
// # Commands
//
//	cinerec <history.json> <catalog.json>   one recommendation run
//	cinerec serve                           HTTP API (POST /api/v1/recommend)
//	cinerec version                         build information
//
// # Output
//
// Recommendations go to standard output; logs go to standard error and,
// with --log-file, to a size-rotated file. --output table prints a
// human-readable table instead of JSON.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel a running fit. In serve mode they stop the
// supervisor tree, which shuts the HTTP server down gracefully.
package main
