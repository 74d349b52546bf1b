// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"time"

	"github.com/tomtom215/cinerec/internal/movies"
	"github.com/tomtom215/cinerec/internal/recommend/features"
	"github.com/tomtom215/cinerec/internal/recommend/forest"
)

// Row is an encoded catalog movie that survived the drop step. Index points
// back into the catalog the row was built from.
type Row struct {
	Index    int
	Title    string
	Features features.Vector
}

// Selection is a catalog row the model predicted as liked.
type Selection struct {
	Index int     `json:"index"`
	Title string  `json:"title"`
	Vote  float64 `json:"vote"` // mean positive fraction over trees
}

// DropStats counts movies excluded from a phase, by reason.
type DropStats struct {
	MissingRating int `json:"missing_rating"`
	MissingYear   int `json:"missing_year"`
	MissingLabel  int `json:"missing_label"`
}

// Total returns the number of dropped movies.
func (d DropStats) Total() int {
	return d.MissingRating + d.MissingYear + d.MissingLabel
}

// Model is a fitted classifier together with the encoder its rows were
// built with. Catalog movies must be encoded with the same encoder.
type Model struct {
	Forest       *forest.Forest
	Encoder      *features.Encoder
	TrainingRows int
	Positives    int
	Dropped      DropStats
	TrainedAt    time.Time
	Duration     time.Duration
}

// Result is the outcome of Engine.Run.
type Result struct {
	// Recommendations are the catalog movies to show, in catalog order.
	Recommendations []movies.Movie

	// Selected are the predicted-liked rows behind Recommendations.
	Selected []Selection

	TrainingRows   int
	CandidateRows  int
	PredictedLiked int
	TrainDropped   DropStats
	PredictDropped DropStats
	Horizon        int

	// OOB is nil when the forest has no out-of-bag estimate.
	OOB *forest.Score

	Duration time.Duration
}

// Metrics tracks engine performance.
type Metrics struct {
	Runs            int64     `json:"runs"`
	Errors          int64     `json:"errors"`
	Recommendations int64     `json:"recommendations"`
	LastRunAt       time.Time `json:"last_run_at"`
}
