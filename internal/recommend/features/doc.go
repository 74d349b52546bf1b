// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

/*
Package features encodes movies as fixed-length numeric vectors for the
classifier.

# Layouts

With the 20-genre DefaultVocabulary (index order: "(no genres listed)",
Action, Adventure, ..., Western) the two layouts are:

	dedicated (23 slots): [genre0 .. genre19, rating, year, label]
	legacy    (22 slots): [year, genre1 .. genre19, rating, label]

Genre slots are 1 when the movie lists the genre. The rating slot holds
rating/5 rounded to four decimal places; the year slot holds year/horizon.
Features omits the trailing label slot and is used for catalog movies.

The legacy layout reproduces the vectors of the original scoring script, where
the "(no genres listed)" slot doubles as the year. The dedicated layout is the
default.

# Usage

	enc, err := features.NewEncoder(features.LayoutDedicated, features.HorizonFor(history, catalog))
	if err != nil {
	    return err
	}
	row, err := enc.Encode(&history[0], history[0].Liked.Value)
	if errors.Is(err, features.ErrMissingRating) {
	    // drop the movie
	}
*/
package features
