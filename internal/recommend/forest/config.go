// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package forest

import (
	"fmt"
	"math"
	"runtime"

	"github.com/tomtom215/cinerec/internal/validation"
)

// Config holds forest hyperparameters. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Trees is the number of bagged trees.
	Trees int `validate:"min=1,max=10000"`

	// MaxFeatures is the number of features examined per split.
	// 0 uses floor(sqrt(features)).
	MaxFeatures int `validate:"gte=0"`

	// MaxDepth limits tree depth. 0 grows trees until leaves are pure.
	MaxDepth int `validate:"gte=0"`

	// MinSamplesSplit is the smallest node that may be split.
	MinSamplesSplit int `validate:"min=2"`

	// MinSamplesLeaf is the smallest number of samples on each side of a split.
	MinSamplesLeaf int `validate:"min=1"`

	// Bootstrap fits each tree on a sample drawn with replacement.
	// Out-of-bag scoring needs it.
	Bootstrap bool

	// Seed seeds tree i with Seed+i.
	Seed int64

	// Jobs is the number of trees fitted concurrently. 0 uses GOMAXPROCS.
	Jobs int `validate:"gte=0"`

	// Progress, when set, is called once per fitted tree. With Jobs > 1 it
	// is called from several goroutines.
	Progress func() `json:"-"`
}

// DefaultConfig returns the defaults of a scikit-learn RandomForestClassifier
// with a fixed seed.
func DefaultConfig() Config {
	return Config{
		Trees:           100,
		MaxFeatures:     0,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		Seed:            42,
		Jobs:            1,
	}
}

// Validate checks the hyperparameters.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid forest config: %w", err)
	}
	return nil
}

// featuresPerSplit resolves MaxFeatures for d features.
func (c *Config) featuresPerSplit(d int) int {
	if c.MaxFeatures > 0 {
		return min(c.MaxFeatures, d)
	}
	return max(1, int(math.Sqrt(float64(d))))
}

// workers resolves Jobs.
func (c *Config) workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}
