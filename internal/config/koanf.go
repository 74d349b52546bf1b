// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"cinerec.yaml",
	"cinerec.yml",
	"/etc/cinerec/config.yaml",
	"/etc/cinerec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CINEREC_CONFIG"

// EnvPrefix is the prefix shared by every configuration environment variable.
const EnvPrefix = "CINEREC_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Caller:     false,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     0,
		},
		Recommend: RecommendConfig{
			MaxResults:    10,
			YearHorizon:   0, // derived from the data
			Layout:        LayoutDedicated,
			TitleMatching: TitleMatchingIndex,
		},
		Forest: ForestConfig{
			Trees:           100,
			MaxFeatures:     0, // floor(sqrt(features))
			MaxDepth:        0,
			MinSamplesSplit: 2,
			MinSamplesLeaf:  1,
			Bootstrap:       true,
			Seed:            42,
			Jobs:            1,
		},
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              3000,
			MaxBodyBytes:      10 << 20,
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
	}
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	return defaultConfig()
}

// sliceConfigPaths lists config paths that hold string slices.
// Environment variables provide them as comma-separated strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// Load builds the configuration from defaults, a YAML file, CINEREC_*
// environment variables and finally overrides, in that order of precedence.
//
// path names the YAML file. When empty, CINEREC_CONFIG and then
// DefaultConfigPaths are consulted; a missing default file is not an error.
// overrides maps koanf paths such as "forest.trees" to values and is meant
// for command-line flags the user set explicitly.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional unless named explicitly)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables
	// CINEREC_RECOMMEND_MAX_RESULTS -> recommend.max_results
	// CINEREC_LOG_LEVEL -> logging.level
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: Explicit overrides (highest priority)
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := k.Set(key, overrides[key]); err != nil {
			return nil, fmt.Errorf("failed to apply override %s: %w", key, err)
		}
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config file named by CINEREC_CONFIG, or the
// first of DefaultConfigPaths that exists, or "".
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// processSliceFields converts comma-separated string values to slices.
// YAML files already yield lists and are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names, without the CINEREC_ prefix
// and lowercased, to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":       "logging.level",
	"log_format":      "logging.format",
	"log_caller":      "logging.caller",
	"log_file":        "logging.file",
	"log_max_size":    "logging.max_size",
	"log_max_backups": "logging.max_backups",
	"log_max_age":     "logging.max_age",

	// Recommendation
	"recommend_max_results":    "recommend.max_results",
	"recommend_year_horizon":   "recommend.year_horizon",
	"recommend_layout":         "recommend.layout",
	"recommend_title_matching": "recommend.title_matching",

	// Forest
	"forest_trees":             "forest.trees",
	"forest_max_features":      "forest.max_features",
	"forest_max_depth":         "forest.max_depth",
	"forest_min_samples_split": "forest.min_samples_split",
	"forest_min_samples_leaf":  "forest.min_samples_leaf",
	"forest_bootstrap":         "forest.bootstrap",
	"forest_seed":              "forest.seed",
	"forest_jobs":              "forest.jobs",

	// Server
	"server_host":                "server.host",
	"server_port":                "server.port",
	"server_max_body_bytes":      "server.max_body_bytes",
	"server_rate_limit_requests": "server.rate_limit_requests",
	"server_rate_limit_window":   "server.rate_limit_window",
	"server_cors_origins":        "server.cors_origins",

	// Metrics
	"metrics_textfile": "metrics.textfile",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unknown variables (including CINEREC_CONFIG itself) are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
