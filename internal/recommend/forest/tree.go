// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package forest

import (
	"math/rand"
	"sort"
)

const leaf = -1

// node is a tree node stored in a flat slice. Leaves have feature == leaf.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64 // fraction of positive samples
	samples   int
}

// Tree is a fitted CART classification tree.
type Tree struct {
	nodes []node
	depth int
}

// Predict returns the positive fraction of the leaf x falls into.
// Samples go left when x[feature] <= threshold.
func (t *Tree) Predict(x []float64) float64 {
	i := 0
	for t.nodes[i].feature != leaf {
		n := &t.nodes[i]
		if x[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].value
}

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	return t.depth
}

// Leaves returns the number of leaves.
func (t *Tree) Leaves() int {
	count := 0
	for i := range t.nodes {
		if t.nodes[i].feature == leaf {
			count++
		}
	}
	return count
}

// split is a candidate partition of a node.
type split struct {
	feature   int
	threshold float64
	impurity  float64 // weighted Gini of the children
	nLeft     int
}

// builder grows one tree.
type builder struct {
	cfg         *Config
	x           [][]float64
	y           []int
	maxFeatures int
	rng         *rand.Rand

	nodes       []node
	depth       int
	importances []float64
}

func newBuilder(cfg *Config, x [][]float64, y []int, rng *rand.Rand) *builder {
	d := len(x[0])
	return &builder{
		cfg:         cfg,
		x:           x,
		y:           y,
		maxFeatures: cfg.featuresPerSplit(d),
		rng:         rng,
		importances: make([]float64, d),
	}
}

// fit grows the tree over the sample indices, which may repeat.
func (b *builder) fit(samples []int) *Tree {
	b.grow(samples, 0)
	return &Tree{nodes: b.nodes, depth: b.depth}
}

func (b *builder) grow(samples []int, depth int) int {
	n := len(samples)
	pos := b.positives(samples)

	id := len(b.nodes)
	b.nodes = append(b.nodes, node{
		feature: leaf,
		value:   float64(pos) / float64(n),
		samples: n,
	})
	b.depth = max(b.depth, depth)

	if pos == 0 || pos == n || n < b.cfg.MinSamplesSplit || n < 2*b.cfg.MinSamplesLeaf {
		return id
	}
	if b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth {
		return id
	}

	best, ok := b.bestSplit(samples, pos)
	if !ok {
		return id
	}

	left := make([]int, 0, best.nLeft)
	right := make([]int, 0, n-best.nLeft)
	for _, s := range samples {
		if b.x[s][best.feature] <= best.threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	b.importances[best.feature] += float64(n)*gini(pos, n) - float64(n)*best.impurity

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)

	b.nodes[id].feature = best.feature
	b.nodes[id].threshold = best.threshold
	b.nodes[id].left = l
	b.nodes[id].right = r
	return id
}

// bestSplit visits features in random order until maxFeatures non-constant
// features were examined and at least one valid split was found.
func (b *builder) bestSplit(samples []int, pos int) (split, bool) {
	var best split
	found := false
	examined := 0

	sorted := make([]int, len(samples))
	for _, f := range b.rng.Perm(len(b.importances)) {
		if examined >= b.maxFeatures && found {
			break
		}

		copy(sorted, samples)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})
		if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
			continue
		}
		examined++

		if s, ok := b.scanFeature(f, sorted, pos); ok && (!found || s.impurity < best.impurity) {
			best = s
			found = true
		}
	}
	return best, found
}

// scanFeature evaluates every threshold between consecutive distinct values
// of feature f over samples sorted by that feature.
func (b *builder) scanFeature(f int, sorted []int, pos int) (split, bool) {
	n := len(sorted)
	minLeaf := b.cfg.MinSamplesLeaf

	var best split
	found := false
	leftPos := 0
	for i := 1; i < n; i++ {
		leftPos += b.y[sorted[i-1]]

		lo, hi := b.x[sorted[i-1]][f], b.x[sorted[i]][f]
		if lo == hi || i < minLeaf || n-i < minLeaf {
			continue
		}

		lg := gini(leftPos, i)
		rg := gini(pos-leftPos, n-i)
		impurity := (float64(i)*lg + float64(n-i)*rg) / float64(n)
		if found && impurity >= best.impurity {
			continue
		}

		threshold := lo + (hi-lo)/2
		if threshold >= hi {
			threshold = lo
		}
		best = split{
			feature:   f,
			threshold: threshold,
			impurity:  impurity,
			nLeft:     i,
		}
		found = true
	}
	return best, found
}

func (b *builder) positives(samples []int) int {
	pos := 0
	for _, s := range samples {
		pos += b.y[s]
	}
	return pos
}

// gini is the Gini impurity of a binary node.
func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}
