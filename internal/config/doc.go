// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package config provides centralized configuration management for Cinerec.

Configuration is assembled in layers, each overriding the previous one:

 1. Built-in defaults (defaultConfig)
 2. YAML file: the path given to Load, else CINEREC_CONFIG, else the first of
    DefaultConfigPaths that exists
 3. Environment variables prefixed with CINEREC_
 4. Explicit overrides, normally the command-line flags the user set

The resulting Config is validated with go-playground/validator tags and a set
of cross-field checks before it is returned. An invalid configuration is an
error; nothing is trained with it.

# Configuration Structure

  - LoggingConfig: zerolog level, format and caller reporting
  - RecommendConfig: result cap, year horizon, feature layout, title matching
  - ForestConfig: tree count, split limits, bootstrap, seed and fitting jobs
  - ServerConfig: HTTP listen address, body limit, rate limit, CORS
  - MetricsConfig: optional Prometheus textfile written after a CLI run

# Environment Variables

Logging:
  - CINEREC_LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - CINEREC_LOG_FORMAT: json or console (default: json)
  - CINEREC_LOG_CALLER: include file:line in log lines (default: false)
  - CINEREC_LOG_FILE: also write logs to this size-rotated file (default: none)
  - CINEREC_LOG_MAX_SIZE: rotate after this many megabytes (default: 100)
  - CINEREC_LOG_MAX_BACKUPS: rotated files kept (default: 3)
  - CINEREC_LOG_MAX_AGE: days rotated files are kept, 0 keeps them (default: 0)

Recommendation:
  - CINEREC_RECOMMEND_MAX_RESULTS: maximum recommendations (default: 10)
  - CINEREC_RECOMMEND_YEAR_HORIZON: year divisor, 0 derives it from the data (default: 0)
  - CINEREC_RECOMMEND_LAYOUT: dedicated or legacy (default: dedicated)
  - CINEREC_RECOMMEND_TITLE_MATCHING: index or title (default: index)

Forest:
  - CINEREC_FOREST_TREES (default: 100)
  - CINEREC_FOREST_MAX_FEATURES: 0 uses floor(sqrt(features)) (default: 0)
  - CINEREC_FOREST_MAX_DEPTH: 0 is unlimited (default: 0)
  - CINEREC_FOREST_MIN_SAMPLES_SPLIT (default: 2)
  - CINEREC_FOREST_MIN_SAMPLES_LEAF (default: 1)
  - CINEREC_FOREST_BOOTSTRAP (default: true)
  - CINEREC_FOREST_SEED (default: 42)
  - CINEREC_FOREST_JOBS: concurrent tree fits, 0 uses GOMAXPROCS (default: 1)

Server:
  - CINEREC_SERVER_HOST (default: 127.0.0.1)
  - CINEREC_SERVER_PORT (default: 3000)
  - CINEREC_SERVER_MAX_BODY_BYTES (default: 10485760)
  - CINEREC_SERVER_RATE_LIMIT_REQUESTS: 0 disables rate limiting (default: 60)
  - CINEREC_SERVER_RATE_LIMIT_WINDOW (default: 1m)
  - CINEREC_SERVER_CORS_ORIGINS: comma-separated list (default: *)

Metrics:
  - CINEREC_METRICS_TEXTFILE: write Prometheus text exposition here after a run

# Usage

	cfg, err := config.Load(configPath, map[string]interface{}{
	    "recommend.max_results": 5,
	})
	if err != nil {
	    return fmt.Errorf("load configuration: %w", err)
	}
*/
package config
