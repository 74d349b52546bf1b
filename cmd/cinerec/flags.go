// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tomtom215/cinerec/internal/config"
	"github.com/tomtom215/cinerec/internal/logging"
)

// flagBindings maps command-line flags to the koanf paths they override.
var flagBindings = map[string]string{
	"log-level":      "logging.level",
	"log-format":     "logging.format",
	"log-file":       "logging.file",
	"max-results":    "recommend.max_results",
	"year-horizon":   "recommend.year_horizon",
	"layout":         "recommend.layout",
	"title-matching": "recommend.title_matching",
	"trees":          "forest.trees",
	"seed":           "forest.seed",
	"jobs":           "forest.jobs",
	"metrics-file":   "metrics.textfile",
	"host":           "server.host",
	"port":           "server.port",
}

// addConfigFlags registers the flags shared by every command. Their
// defaults are only shown in help; unset flags never override the config.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "configuration file path")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "json", "log format: json or console")
	flags.String("log-file", "", "also write logs to this size-rotated file")
	flags.Int("max-results", 10, "maximum number of recommendations")
	flags.Int("year-horizon", 0, "year divisor for release years (0 derives it from the data)")
	flags.String("layout", config.LayoutDedicated, "feature layout: dedicated or legacy")
	flags.String("title-matching", config.TitleMatchingIndex, "output assembly: index or title")
	flags.Int("trees", 100, "number of trees in the forest")
	flags.Int64("seed", 42, "random seed for tree fitting")
	flags.Int("jobs", 1, "trees fitted concurrently (0 uses all CPUs)")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile")
}

// configOverrides collects the flags the user set explicitly.
func configOverrides(flags *pflag.FlagSet) (map[string]interface{}, error) {
	overrides := make(map[string]interface{})
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagBindings[f.Name]
		if !ok || err != nil {
			return
		}
		var value interface{}
		switch f.Value.Type() {
		case "int":
			value, err = flags.GetInt(f.Name)
		case "int64":
			value, err = flags.GetInt64(f.Name)
		case "bool":
			value, err = flags.GetBool(f.Name)
		default:
			value = f.Value.String()
		}
		overrides[key] = value
	})
	if err != nil {
		return nil, fmt.Errorf("read flags: %w", err)
	}
	return overrides, nil
}

// loadConfig loads the layered configuration for cmd and initializes
// logging from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	overrides, err := configOverrides(flags)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Caller:     cfg.Logging.Caller,
		Timestamp:  true,
		Output:     cmd.ErrOrStderr(),
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAge,
	})
	return cfg, nil
}
