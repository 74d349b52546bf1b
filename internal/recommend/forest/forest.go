// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package forest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Errors returned by Fit and Predict.
var (
	ErrNoSamples         = errors.New("no training samples")
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	ErrInvalidLabel      = errors.New("labels must be 0 or 1")
)

// Forest is a fitted random forest classifier. It is immutable and safe for
// concurrent use.
type Forest struct {
	config      Config
	trees       []*Tree
	features    int
	importances []float64
	oob         Score
	oobOK       bool
}

// fitted is the output of one tree fit.
type fitted struct {
	tree        *Tree
	importances []float64
	inBag       []bool
}

// Fit grows cfg.Trees trees on rows x with binary labels y. Tree i draws its
// bootstrap sample and feature order from a generator seeded cfg.Seed+i, so
// the result does not depend on cfg.Jobs. ctx is checked before each tree.
func Fit(ctx context.Context, x [][]float64, y []int, cfg Config) (*Forest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, ErrNoSamples
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrDimensionMismatch, len(x), len(y))
	}
	d := len(x[0])
	if d == 0 {
		return nil, fmt.Errorf("%w: rows have no features", ErrDimensionMismatch)
	}
	for i := range x {
		if len(x[i]) != d {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(x[i]), d)
		}
		if y[i] != 0 && y[i] != 1 {
			return nil, fmt.Errorf("%w: row %d has label %d", ErrInvalidLabel, i, y[i])
		}
	}

	results := make([]fitted, cfg.Trees)
	fitOne := func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = fitTree(&cfg, x, y, cfg.Seed+int64(i))
		if cfg.Progress != nil {
			cfg.Progress()
		}
		return nil
	}

	if workers := cfg.workers(); workers <= 1 {
		for i := range results {
			if err := fitOne(i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range results {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return fitOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	f := &Forest{
		config:      cfg,
		trees:       make([]*Tree, len(results)),
		features:    d,
		importances: make([]float64, d),
	}
	for i := range results {
		f.trees[i] = results[i].tree
		for j, v := range results[i].importances {
			f.importances[j] += v / float64(len(results))
		}
	}
	if cfg.Bootstrap {
		f.oob, f.oobOK = f.outOfBag(x, y, results)
	}
	return f, nil
}

func fitTree(cfg *Config, x [][]float64, y []int, seed int64) fitted {
	rng := rand.New(rand.NewSource(seed))
	n := len(x)

	samples := make([]int, n)
	inBag := make([]bool, n)
	for i := range samples {
		if cfg.Bootstrap {
			samples[i] = rng.Intn(n)
		} else {
			samples[i] = i
		}
		inBag[samples[i]] = true
	}

	b := newBuilder(cfg, x, y, rng)
	tree := b.fit(samples)
	return fitted{tree: tree, importances: normalize(b.importances), inBag: inBag}
}

// outOfBag scores each row with the trees that did not sample it.
func (f *Forest) outOfBag(x [][]float64, y []int, results []fitted) (Score, bool) {
	var pos, neg []float64
	for i := range x {
		sum, votes := 0.0, 0
		for t := range results {
			if !results[t].inBag[i] {
				sum += results[t].tree.Predict(x[i])
				votes++
			}
		}
		if votes == 0 {
			continue
		}
		if y[i] == 1 {
			pos = append(pos, sum/float64(votes))
		} else {
			neg = append(neg, sum/float64(votes))
		}
	}
	if len(pos)+len(neg) == 0 {
		return Score{}, false
	}
	return Evaluate(pos, neg), true
}

// Predict returns the mean positive fraction over all trees.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.features {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrDimensionMismatch, len(x), f.features)
	}
	sum := 0.0
	for _, t := range f.trees {
		sum += t.Predict(x)
	}
	return sum / float64(len(f.trees)), nil
}

// Classify returns 1 when the mean vote exceeds Threshold, otherwise 0,
// together with the vote itself.
func (f *Forest) Classify(x []float64) (label int, vote float64, err error) {
	vote, err = f.Predict(x)
	if err != nil {
		return 0, 0, err
	}
	if vote > Threshold {
		return 1, vote, nil
	}
	return 0, vote, nil
}

// Trees returns the fitted trees.
func (f *Forest) Trees() []*Tree {
	return f.trees
}

// Features returns the number of features each row must have.
func (f *Forest) Features() int {
	return f.features
}

// Config returns the hyperparameters the forest was fitted with.
func (f *Forest) Config() Config {
	return f.config
}

// FeatureImportances returns the mean decrease in Gini impurity per
// feature, normalized per tree and averaged over trees.
func (f *Forest) FeatureImportances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	return out
}

// OOBScore returns the out-of-bag score. ok is false when the forest was
// fitted without bootstrap or every row was in every tree's sample.
func (f *Forest) OOBScore() (score Score, ok bool) {
	return f.oob, f.oobOK
}

func normalize(v []float64) []float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total == 0 {
		return v
	}
	for i := range v {
		v[i] /= total
	}
	return v
}
