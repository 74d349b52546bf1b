// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/metrics"
	"github.com/tomtom215/cinerec/internal/movies"
)

// runRecommend performs one train-and-recommend run over the history and
// catalog files in args.
func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if format != outputJSON && format != outputTable {
		return fmt.Errorf("unknown output format %q (want json or table)", format)
	}

	var progress io.Writer
	if show, _ := cmd.Flags().GetBool("progress"); show {
		progress = cmd.ErrOrStderr()
	}
	engine, err := initEngine(cfg, progress)
	if err != nil {
		return err
	}

	history, err := movies.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	catalog, err := movies.LoadFile(args[1])
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	ctx := logging.ContextWithNewRunID(cmd.Context())
	logging.Ctx(ctx).Info().
		Str("history", args[0]).
		Str("catalog", args[1]).
		Int("history_movies", len(history)).
		Int("catalog_movies", len(catalog)).
		Msg("recommendation run started")

	result, runErr := engine.Run(ctx, history, catalog)
	if runErr == nil {
		runErr = writeResult(cmd.OutOrStdout(), format, result)
	}

	if path := cfg.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			if runErr != nil {
				logging.Ctx(ctx).Error().Err(err).Msg("metrics textfile not written")
				return runErr
			}
			return err
		}
	}
	return runErr
}
