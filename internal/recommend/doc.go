// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package recommend turns a viewing history into movie recommendations.
//
// # Pipeline
//
// A run has three steps:
//
//   - Train: every history movie with a rating, a year and a liked label is
//     encoded (see package features) and a bagged decision-tree classifier
//     is fitted on the rows (see package forest).
//   - Predict: every catalog movie with a rating and a year is encoded with
//     the same encoder and scored. Rows whose mean tree vote is above 0.5
//     are predicted liked.
//   - Select: the first MaxResults predicted-liked rows, in catalog order,
//     are mapped back to catalog movies.
//
// Movies lacking a required field are dropped from their phase, counted in
// DropStats and logged at debug level. A history with no usable rows fails
// with ErrEmptyTrainingSet.
//
// # Title Matching
//
// By default each selected catalog entry is emitted once (MatchByIndex).
// MatchByTitle emits every catalog entry whose title equals a selected
// title, so a catalog with duplicate titles can yield more than MaxResults
// movies.
//
// # Year Horizon
//
// Release years are divided by a horizon. A configured horizon of 0 picks
// the largest year in the data so that no year slot exceeds 1.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := engine.Run(ctx, history, catalog)
//
// # Thread Safety
//
// The engine keeps no model between runs and is safe for concurrent use.
// Train and Recommend can be used separately to score several catalogs with
// one fitted Model.
package recommend
