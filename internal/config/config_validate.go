// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package config

import (
	"fmt"

	"github.com/tomtom215/cinerec/internal/recommend/features"
	"github.com/tomtom215/cinerec/internal/validation"
)

// Validate checks struct tags first, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateForest(); err != nil {
		return err
	}

	return c.validateServer()
}

// FeatureWidth returns the number of features the configured layout encodes.
func (c *Config) FeatureWidth() int {
	layout, err := features.ParseLayout(c.Recommend.Layout)
	if err != nil {
		layout = features.LayoutDedicated
	}
	return layout.FeatureWidth(features.DefaultVocabulary)
}

func (c *Config) validateForest() error {
	if width := c.FeatureWidth(); c.Forest.MaxFeatures > width {
		return fmt.Errorf("forest.max_features %d exceeds the %d features of the %s layout",
			c.Forest.MaxFeatures, width, c.Recommend.Layout)
	}
	if c.Forest.MinSamplesLeaf > c.Forest.MinSamplesSplit {
		return fmt.Errorf("forest.min_samples_leaf %d must not exceed forest.min_samples_split %d",
			c.Forest.MinSamplesLeaf, c.Forest.MinSamplesSplit)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when server.rate_limit_requests is set")
	}
	return nil
}
