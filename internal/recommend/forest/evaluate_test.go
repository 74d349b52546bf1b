// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	pos := []float64{0.9, 0.7, 0.4}
	neg := []float64{0.1, 0.6, 0.3, 0.2}

	score := Evaluate(pos, neg)

	// tp=2 fp=1 fn=1 tn=3
	assert.InDelta(t, 2.0/3.0, score.Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, score.Recall, 1e-12)
	assert.InDelta(t, 5.0/7.0, score.Accuracy, 1e-12)
	// pairs won: 0.9->4, 0.7->4, 0.4->3
	assert.InDelta(t, 11.0/12.0, score.AUC, 1e-12)
	assert.Equal(t, 7, score.Samples)
}

func TestAUC(t *testing.T) {
	tests := []struct {
		name string
		pos  []float64
		neg  []float64
		want float64
	}{
		{"perfect", []float64{0.8, 0.9}, []float64{0.1, 0.2}, 1},
		{"inverted", []float64{0.1}, []float64{0.9}, 0},
		{"ties count half", []float64{0.5, 0.5}, []float64{0.5}, 0.5},
		{"no negatives", []float64{0.5}, nil, 0},
		{"no positives", nil, []float64{0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AUC(tt.pos, tt.neg), 1e-12)
		})
	}
}

func TestAUC_DoesNotReorderInput(t *testing.T) {
	neg := []float64{0.9, 0.1, 0.5}
	AUC([]float64{0.6}, neg)
	assert.Equal(t, []float64{0.9, 0.1, 0.5}, neg)
}

func TestEvaluate_Empty(t *testing.T) {
	score := Evaluate(nil, nil)
	assert.Equal(t, Score{}, score)
}

func TestScore_String(t *testing.T) {
	s := Score{Accuracy: 0.75, Precision: 0.5, Recall: 1, AUC: 0.8, Samples: 4}
	assert.Equal(t, "accuracy=0.7500 precision=0.5000 recall=1.0000 auc=0.8000 samples=4", s.String())
}
