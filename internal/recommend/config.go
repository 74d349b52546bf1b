// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerec/internal/recommend/features"
	"github.com/tomtom215/cinerec/internal/recommend/forest"
)

// DefaultMaxResults is the number of recommendations returned by default.
const DefaultMaxResults = 10

// TitleMatching selects how predicted catalog rows become output movies.
type TitleMatching int

const (
	// MatchByIndex emits each selected catalog entry exactly once.
	MatchByIndex TitleMatching = iota

	// MatchByTitle emits every catalog entry whose title equals a selected
	// title, in catalog order. Duplicate titles can push the output past
	// MaxResults.
	MatchByTitle
)

// ParseTitleMatching maps a configuration value to a TitleMatching.
func ParseTitleMatching(s string) (TitleMatching, error) {
	switch s {
	case "index", "":
		return MatchByIndex, nil
	case "title":
		return MatchByTitle, nil
	default:
		return 0, fmt.Errorf("unknown title matching mode %q", s)
	}
}

func (m TitleMatching) String() string {
	if m == MatchByTitle {
		return "title"
	}
	return "index"
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MaxResults caps the number of predicted-liked catalog rows selected.
	MaxResults int `json:"max_results"`

	// YearHorizon divides release years. 0 uses the largest year found in
	// the data, see Engine.Run.
	YearHorizon int `json:"year_horizon"`

	// Layout is the feature vector layout.
	Layout features.Layout `json:"layout"`

	// TitleMatching controls output assembly.
	TitleMatching TitleMatching `json:"title_matching"`

	// Forest contains the classifier hyperparameters.
	Forest forest.Config `json:"forest"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxResults:    DefaultMaxResults,
		YearHorizon:   0,
		Layout:        features.LayoutDedicated,
		TitleMatching: MatchByIndex,
		Forest:        forest.DefaultConfig(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.YearHorizon < 0 {
		return fmt.Errorf("year_horizon must be non-negative, got %d", c.YearHorizon)
	}
	if c.Layout != features.LayoutDedicated && c.Layout != features.LayoutLegacy {
		return fmt.Errorf("unknown layout %d", c.Layout)
	}
	if c.TitleMatching != MatchByIndex && c.TitleMatching != MatchByTitle {
		return fmt.Errorf("unknown title matching %d", c.TitleMatching)
	}
	if width := c.Layout.FeatureWidth(features.DefaultVocabulary); c.Forest.MaxFeatures > width {
		return fmt.Errorf("forest max_features %d exceeds %d features", c.Forest.MaxFeatures, width)
	}
	return c.Forest.Validate()
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON writes enum fields by name.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Layout        string `json:"layout"`
		TitleMatching string `json:"title_matching"`
	}{
		Alias:         (*Alias)(c),
		Layout:        c.Layout.String(),
		TitleMatching: c.TitleMatching.String(),
	})
}
