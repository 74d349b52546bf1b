// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package features

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// NoGenres is the MovieLens placeholder for a movie without genres. It is
// part of the vocabulary; the legacy layout stores the release year in its slot.
const NoGenres = "(no genres listed)"

// movieLensGenres is the MovieLens genre list.
var movieLensGenres = []string{
	"Horror", "Romance", "Crime", "Animation", "Mystery", "Children", "Sci-Fi",
	"Adventure", "Musical", "Drama", "Action", "IMAX", "Fantasy", "Film-Noir",
	NoGenres, "War", "Documentary", "Western", "Thriller", "Comedy",
}

// Vocabulary is an immutable, ordered set of genre labels. Labels are
// indexed in sorted order.
type Vocabulary struct {
	genres []string
	index  map[string]int
}

// DefaultVocabulary holds the 20 MovieLens genres. Sorting puts NoGenres at
// index 0.
var DefaultVocabulary = NewVocabulary(movieLensGenres)

// NewVocabulary builds a vocabulary from genres, dropping duplicates and
// empty labels.
func NewVocabulary(genres []string) *Vocabulary {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, g := range genres {
		if g != "" {
			set.Add(g)
		}
	}

	sorted := set.ToSlice()
	sort.Strings(sorted)

	index := make(map[string]int, len(sorted))
	for i, g := range sorted {
		index[g] = i
	}
	return &Vocabulary{genres: sorted, index: index}
}

// Index returns the slot of genre.
func (v *Vocabulary) Index(genre string) (int, bool) {
	i, ok := v.index[genre]
	return i, ok
}

// Len returns the number of genres.
func (v *Vocabulary) Len() int {
	return len(v.genres)
}

// Genres returns the genres in index order.
func (v *Vocabulary) Genres() []string {
	out := make([]string, len(v.genres))
	copy(out, v.genres)
	return out
}
