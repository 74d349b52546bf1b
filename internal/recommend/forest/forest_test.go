// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package forest

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// thresholdData labels rows positive when the first feature is at least 0.5.
// The second feature is noise.
func thresholdData(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	y := make([]int, n)
	for i := range x {
		v := float64(i) / float64(n)
		x[i] = []float64{v, rng.Float64()}
		if v >= 0.5 {
			y[i] = 1
		}
	}
	return x, y
}

func TestFit_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()

	_, err := Fit(ctx, nil, nil, cfg)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Fit(ctx, [][]float64{{1}, {2}}, []int{1}, cfg)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Fit(ctx, [][]float64{{1, 2}, {2}}, []int{1, 0}, cfg)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Fit(ctx, [][]float64{{}, {}}, []int{1, 0}, cfg)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Fit(ctx, [][]float64{{1}, {2}}, []int{1, 2}, cfg)
	assert.ErrorIs(t, err, ErrInvalidLabel)

	bad := cfg
	bad.Trees = 0
	_, err = Fit(ctx, [][]float64{{1}}, []int{1}, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Trees must be at least 1")
}

func TestFit_LearnsThreshold(t *testing.T) {
	x, y := thresholdData(40, 1)

	f, err := Fit(context.Background(), x, y, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, f.Trees(), 100)
	assert.Equal(t, 2, f.Features())

	tests := []struct {
		row  []float64
		want int
	}{
		{[]float64{0.05, 0.5}, 0},
		{[]float64{0.2, 0.9}, 0},
		{[]float64{0.8, 0.1}, 1},
		{[]float64{0.95, 0.5}, 1},
	}
	for _, tt := range tests {
		got, _, err := f.Classify(tt.row)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Classify(%v)", tt.row)
	}

	importances := f.FeatureImportances()
	require.Len(t, importances, 2)
	assert.Greater(t, importances[0], importances[1])
	assert.InDelta(t, 1.0, importances[0]+importances[1], 1e-9)
}

func TestFit_ConstantLabels(t *testing.T) {
	x, _ := thresholdData(10, 2)

	for _, label := range []int{0, 1} {
		y := make([]int, len(x))
		for i := range y {
			y[i] = label
		}

		f, err := Fit(context.Background(), x, y, DefaultConfig())
		require.NoError(t, err)

		for _, row := range [][]float64{{0, 0}, {0.5, 0.5}, {10, -3}} {
			p, err := f.Predict(row)
			require.NoError(t, err)
			assert.Equal(t, float64(label), p)

			c, vote, err := f.Classify(row)
			require.NoError(t, err)
			assert.Equal(t, label, c)
			assert.Equal(t, p, vote)
		}
		for _, tree := range f.Trees() {
			assert.Equal(t, 1, tree.Leaves())
		}
	}
}

func TestFit_DeterministicAcrossJobs(t *testing.T) {
	x, y := thresholdData(60, 3)
	probes, _ := thresholdData(25, 4)

	sequential := DefaultConfig()
	parallel := DefaultConfig()
	parallel.Jobs = 4
	auto := DefaultConfig()
	auto.Jobs = 0

	var reference []float64
	for _, cfg := range []Config{sequential, parallel, auto} {
		f, err := Fit(context.Background(), x, y, cfg)
		require.NoError(t, err)

		preds := make([]float64, len(probes))
		for i, row := range probes {
			preds[i], err = f.Predict(row)
			require.NoError(t, err)
		}
		if reference == nil {
			reference = preds
			continue
		}
		assert.Equal(t, reference, preds, "jobs=%d", cfg.Jobs)
	}
}

func TestFit_SameSeedSameForest(t *testing.T) {
	x, y := thresholdData(30, 5)
	cfg := DefaultConfig()
	cfg.Trees = 10

	a, err := Fit(context.Background(), x, y, cfg)
	require.NoError(t, err)
	b, err := Fit(context.Background(), x, y, cfg)
	require.NoError(t, err)

	for i := range a.Trees() {
		assert.Equal(t, a.Trees()[i].nodes, b.Trees()[i].nodes)
	}
	oa, _ := a.OOBScore()
	ob, _ := b.OOBScore()
	assert.Equal(t, oa, ob)
}

func TestFit_Progress(t *testing.T) {
	x, y := thresholdData(30, 7)

	for _, jobs := range []int{1, 4} {
		var calls atomic.Int32
		cfg := DefaultConfig()
		cfg.Trees = 12
		cfg.Jobs = jobs
		cfg.Progress = func() { calls.Add(1) }

		_, err := Fit(context.Background(), x, y, cfg)
		require.NoError(t, err)
		assert.Equal(t, int32(12), calls.Load(), "jobs=%d", jobs)
	}
}

func TestFit_OOBScore(t *testing.T) {
	x, y := thresholdData(50, 6)

	f, err := Fit(context.Background(), x, y, DefaultConfig())
	require.NoError(t, err)

	score, ok := f.OOBScore()
	require.True(t, ok)
	assert.Positive(t, score.Samples)
	assert.LessOrEqual(t, score.Samples, len(x))
	for _, v := range []float64{score.Accuracy, score.Precision, score.Recall, score.AUC} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Greater(t, score.Accuracy, 0.8)

	cfg := DefaultConfig()
	cfg.Bootstrap = false
	f, err = Fit(context.Background(), x, y, cfg)
	require.NoError(t, err)
	_, ok = f.OOBScore()
	assert.False(t, ok)
}

func TestFit_ContextCanceled(t *testing.T) {
	x, y := thresholdData(20, 7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, jobs := range []int{1, 4} {
		cfg := DefaultConfig()
		cfg.Jobs = jobs
		_, err := Fit(ctx, x, y, cfg)
		assert.ErrorIs(t, err, context.Canceled, "jobs=%d", jobs)
	}
}

func TestFit_MaxDepth(t *testing.T) {
	x, y := thresholdData(40, 8)
	cfg := DefaultConfig()
	cfg.MaxDepth = 1
	cfg.Trees = 20

	f, err := Fit(context.Background(), x, y, cfg)
	require.NoError(t, err)
	for _, tree := range f.Trees() {
		assert.LessOrEqual(t, tree.Depth(), 1)
		assert.LessOrEqual(t, tree.Leaves(), 2)
	}
}

func TestFit_MinSamplesLeaf(t *testing.T) {
	x, y := thresholdData(40, 9)
	cfg := DefaultConfig()
	cfg.MinSamplesLeaf = 5
	cfg.MinSamplesSplit = 10
	cfg.Trees = 20

	f, err := Fit(context.Background(), x, y, cfg)
	require.NoError(t, err)
	for _, tree := range f.Trees() {
		for _, n := range tree.nodes {
			if n.feature == leaf {
				assert.GreaterOrEqual(t, n.samples, 5)
			}
		}
	}
}

func TestClassify_TieIsNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trees = 1
	cfg.Bootstrap = false

	f, err := Fit(context.Background(), [][]float64{{1}, {1}}, []int{0, 1}, cfg)
	require.NoError(t, err)

	p, err := f.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)

	c, vote, err := f.Classify([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, 0, c)
	assert.Equal(t, 0.5, vote)
}

func TestPredict_DimensionMismatch(t *testing.T) {
	x, y := thresholdData(10, 10)
	f, err := Fit(context.Background(), x, y, DefaultConfig())
	require.NoError(t, err)

	_, err = f.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, _, err = f.Classify([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestFeaturesPerSplit(t *testing.T) {
	tests := []struct {
		maxFeatures int
		d           int
		want        int
	}{
		{0, 21, 4},
		{0, 22, 4},
		{0, 24, 4},
		{0, 25, 5},
		{0, 1, 1},
		{0, 2, 1},
		{0, 16, 4},
		{3, 22, 3},
		{30, 22, 22},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.MaxFeatures = tt.maxFeatures
		assert.Equal(t, tt.want, cfg.featuresPerSplit(tt.d), "max=%d d=%d", tt.maxFeatures, tt.d)
	}
}

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, gini(0, 0))
	assert.Equal(t, 0.0, gini(0, 4))
	assert.Equal(t, 0.0, gini(4, 4))
	assert.Equal(t, 0.5, gini(2, 4))
	assert.InDelta(t, 0.375, gini(1, 4), 1e-12)
}
