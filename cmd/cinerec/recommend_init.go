// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/tomtom215/cinerec/internal/config"
	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/recommend"
	"github.com/tomtom215/cinerec/internal/recommend/features"
	"github.com/tomtom215/cinerec/internal/recommend/forest"
)

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) (*recommend.Config, error) {
	layout, err := features.ParseLayout(cfg.Recommend.Layout)
	if err != nil {
		return nil, err
	}
	matching, err := recommend.ParseTitleMatching(cfg.Recommend.TitleMatching)
	if err != nil {
		return nil, err
	}

	return &recommend.Config{
		MaxResults:    cfg.Recommend.MaxResults,
		YearHorizon:   cfg.Recommend.YearHorizon,
		Layout:        layout,
		TitleMatching: matching,
		Forest: forest.Config{
			Trees:           cfg.Forest.Trees,
			MaxFeatures:     cfg.Forest.MaxFeatures,
			MaxDepth:        cfg.Forest.MaxDepth,
			MinSamplesSplit: cfg.Forest.MinSamplesSplit,
			MinSamplesLeaf:  cfg.Forest.MinSamplesLeaf,
			Bootstrap:       cfg.Forest.Bootstrap,
			Seed:            cfg.Forest.Seed,
			Jobs:            cfg.Forest.Jobs,
		},
	}, nil
}

// initEngine builds the recommendation engine. When progress is non-nil a
// bar advancing once per fitted tree is drawn on it.
func initEngine(cfg *config.Config, progress io.Writer) (*recommend.Engine, error) {
	engineCfg, err := buildEngineConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build engine config: %w", err)
	}

	if progress != nil {
		bar := progressbar.NewOptions(engineCfg.Forest.Trees,
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("fitting trees"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		engineCfg.Forest.Progress = func() {
			_ = bar.Add(1)
		}
	}

	engine, err := recommend.NewEngine(engineCfg, logging.Logger())
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Int("max_results", engineCfg.MaxResults).
		Int("year_horizon", engineCfg.YearHorizon).
		Str("layout", engineCfg.Layout.String()).
		Str("title_matching", engineCfg.TitleMatching.String()).
		Int("trees", engineCfg.Forest.Trees).
		Int("jobs", engineCfg.Forest.Jobs).
		Msg("recommendation engine initialized")
	return engine, nil
}
