// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinerec/internal/logging"
)

// Output formats accepted by --output.
const (
	outputJSON  = "json"
	outputTable = "table"
)

var rootCommand = &cobra.Command{
	Use:   "cinerec <history.json> <catalog.json>",
	Short: "Recommend catalog movies from a viewing history.",
	Long: `cinerec learns which movies a user likes from their viewing history and
prints up to ten catalog movies the model predicts they will like.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRecommend,
}

func init() {
	addConfigFlags(rootCommand.PersistentFlags())

	rootCommand.Flags().StringP("output", "o", outputJSON, "output format: json or table")
	rootCommand.Flags().Bool("progress", false, "show a tree fitting progress bar on stderr")

	rootCommand.AddCommand(serveCommand, versionCommand)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCommand.ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error().Err(err).Msg("cinerec failed")
		os.Exit(1)
	}
}
