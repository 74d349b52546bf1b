// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package config

import (
	"net"
	"strconv"
	"time"
)

// Feature layouts accepted by recommend.layout.
const (
	LayoutDedicated = "dedicated"
	LayoutLegacy    = "legacy"
)

// Title matching modes accepted by recommend.title_matching.
const (
	TitleMatchingIndex = "index"
	TitleMatchingTitle = "title"
)

// Config holds all application configuration.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Forest    ForestConfig    `koanf:"forest"`
	Server    ServerConfig    `koanf:"server"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// LoggingConfig holds logging configuration for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller adds file:line to each log line.
	// Default: false
	Caller bool `koanf:"caller"`

	// File also writes logs to a size-rotated file. Empty disables it.
	File string `koanf:"file"`

	// MaxSize is the size in megabytes at which File is rotated.
	// Default: 100
	MaxSize int `koanf:"max_size" validate:"min=1"`

	// MaxBackups is the number of rotated files kept.
	// Default: 3
	MaxBackups int `koanf:"max_backups" validate:"gte=0"`

	// MaxAge is the number of days rotated files are kept. 0 keeps them.
	// Default: 0
	MaxAge int `koanf:"max_age" validate:"gte=0"`
}

// RecommendConfig controls feature encoding and result assembly.
type RecommendConfig struct {
	// MaxResults caps the number of recommended movies.
	// Default: 10
	MaxResults int `koanf:"max_results" validate:"min=1,max=1000"`

	// YearHorizon divides release years. 0 derives it from the largest
	// year present in the history and catalog.
	// Default: 0
	YearHorizon int `koanf:"year_horizon" validate:"gte=0,lte=9999"`

	// Layout selects the feature vector layout: dedicated keeps the year in
	// its own slot, legacy stores it in the "(no genres listed)" slot.
	// Default: dedicated
	Layout string `koanf:"layout" validate:"oneof=dedicated legacy"`

	// TitleMatching selects how predicted rows map back to catalog entries:
	// index emits each selected entry once, title emits every entry sharing
	// a selected title.
	// Default: index
	TitleMatching string `koanf:"title_matching" validate:"oneof=index title"`
}

// ForestConfig holds random forest hyperparameters.
type ForestConfig struct {
	// Trees is the number of bagged trees.
	// Default: 100
	Trees int `koanf:"trees" validate:"min=1,max=10000"`

	// MaxFeatures is the number of features examined per split. 0 uses
	// floor(sqrt(features)).
	// Default: 0
	MaxFeatures int `koanf:"max_features" validate:"gte=0"`

	// MaxDepth limits tree depth. 0 is unlimited.
	// Default: 0
	MaxDepth int `koanf:"max_depth" validate:"gte=0"`

	// MinSamplesSplit is the smallest node that may be split.
	// Default: 2
	MinSamplesSplit int `koanf:"min_samples_split" validate:"min=2"`

	// MinSamplesLeaf is the smallest allowed leaf.
	// Default: 1
	MinSamplesLeaf int `koanf:"min_samples_leaf" validate:"min=1"`

	// Bootstrap draws each tree's training rows with replacement.
	// Default: true
	Bootstrap bool `koanf:"bootstrap"`

	// Seed makes fitting reproducible. Tree i uses Seed+i.
	// Default: 42
	Seed int64 `koanf:"seed"`

	// Jobs is the number of trees fitted concurrently. 0 uses GOMAXPROCS.
	// Default: 1
	Jobs int `koanf:"jobs" validate:"gte=0,lte=1024"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// MaxBodyBytes limits the size of a recommend request body.
	// Default: 10 MiB
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=1"`

	// RateLimitRequests per RateLimitWindow per client IP. 0 disables it.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed origins. Comma-separated in env vars.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// MetricsConfig holds Prometheus export settings.
type MetricsConfig struct {
	// Textfile is written with the text exposition format after a CLI run,
	// for node_exporter's textfile collector. Empty disables it.
	Textfile string `koanf:"textfile"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
