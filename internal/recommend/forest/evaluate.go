// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package forest

import (
	"fmt"
	"sort"
)

// Threshold is the probability above which a row is classified positive.
const Threshold = 0.5

// Score holds classification metrics.
type Score struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	AUC       float64
	Samples   int
}

func (s Score) String() string {
	return fmt.Sprintf("accuracy=%.4f precision=%.4f recall=%.4f auc=%.4f samples=%d",
		s.Accuracy, s.Precision, s.Recall, s.AUC, s.Samples)
}

// Evaluate scores predicted probabilities of positive and negative rows.
func Evaluate(posPrediction, negPrediction []float64) Score {
	return Score{
		Accuracy:  Accuracy(posPrediction, negPrediction),
		Precision: Precision(posPrediction, negPrediction),
		Recall:    Recall(posPrediction, negPrediction),
		AUC:       AUC(posPrediction, negPrediction),
		Samples:   len(posPrediction) + len(negPrediction),
	}
}

func Precision(posPrediction, negPrediction []float64) float64 {
	var tp, fp float64
	for _, p := range posPrediction {
		if p > Threshold { // true positive
			tp++
		}
	}
	for _, p := range negPrediction {
		if p > Threshold { // false positive
			fp++
		}
	}
	if tp+fp == 0 {
		return 0
	}
	return tp / (tp + fp)
}

func Recall(posPrediction, _ []float64) float64 {
	var tp float64
	for _, p := range posPrediction {
		if p > Threshold {
			tp++
		}
	}
	if len(posPrediction) == 0 {
		return 0
	}
	return tp / float64(len(posPrediction))
}

func Accuracy(posPrediction, negPrediction []float64) float64 {
	var correct float64
	for _, p := range posPrediction {
		if p > Threshold {
			correct++
		}
	}
	for _, p := range negPrediction {
		if p <= Threshold {
			correct++
		}
	}
	if len(posPrediction)+len(negPrediction) == 0 {
		return 0
	}
	return correct / float64(len(posPrediction)+len(negPrediction))
}

// AUC is the probability that a random positive row scores above a random
// negative row. Ties count half.
func AUC(posPrediction, negPrediction []float64) float64 {
	if len(posPrediction) == 0 || len(negPrediction) == 0 {
		return 0
	}
	neg := make([]float64, len(negPrediction))
	copy(neg, negPrediction)
	sort.Float64s(neg)

	var sum float64
	for _, p := range posPrediction {
		below := sort.SearchFloat64s(neg, p)
		equal := sort.Search(len(neg), func(i int) bool { return neg[i] > p }) - below
		sum += float64(below) + float64(equal)/2
	}
	return sum / float64(len(posPrediction)*len(negPrediction))
}
