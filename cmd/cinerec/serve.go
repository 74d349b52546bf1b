// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinerec/internal/api"
	"github.com/tomtom215/cinerec/internal/config"
	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/metrics"
	"github.com/tomtom215/cinerec/internal/supervisor"
	"github.com/tomtom215/cinerec/internal/supervisor/services"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over HTTP.",
	Long: `serve starts the HTTP API. POST /api/v1/recommend trains a model on the
posted history and returns the recommended catalog movies.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCommand.Flags().String("host", "127.0.0.1", "listen host")
	serveCommand.Flags().Int("port", 3000, "listen port")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tree, err := buildServeTree(cfg)
	if err != nil {
		return err
	}

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("textfile", cfg.Metrics.Textfile).
		Msg("starting cinerec server")

	if err := tree.Serve(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		logging.Warn().Int("services", len(unstopped)).Msg("services did not stop in time")
	}
	logging.Info().Msg("cinerec server stopped")
	return nil
}

// buildServeTree wires the engine, the HTTP API and the metrics exporter
// into a supervisor tree.
func buildServeTree(cfg *config.Config) (*supervisor.Tree, error) {
	engine, err := initEngine(cfg, nil)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(engine, cfg.Server.MaxBodyBytes)
	router := api.NewRouter(handler, api.NewMiddlewareFromConfig(&cfg.Server))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = shutdownTimeout + 5*time.Second
	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), treeConfig)

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	if path := cfg.Metrics.Textfile; path != "" {
		tree.AddExportService(services.NewTextfileService(
			path, services.DefaultTextfileInterval, metrics.WriteTextfile, logging.Logger()))
	}
	return tree, nil
}
