// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package features

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tomtom215/cinerec/internal/movies"
)

// LegacyYearHorizon is the fixed year divisor used by the first releases.
const LegacyYearHorizon = 2019

// MaxYearHorizon caps an automatic horizon.
const MaxYearHorizon = 9999

// MaxRating is the top of the rating scale. Ratings are divided by it.
const MaxRating = 5.0

// Errors returned for movies that cannot be encoded.
var (
	ErrMissingRating = errors.New("movie has no numeric rating")
	ErrMissingYear   = errors.New("movie has no numeric year")
)

// Layout selects where the rating and year land in a vector.
type Layout int

const (
	// LayoutDedicated gives every genre, NoGenres included, a one-hot slot
	// and appends rating then year.
	LayoutDedicated Layout = iota

	// LayoutLegacy writes the normalized year into the NoGenres slot and
	// appends the rating. A movie listing only NoGenres is therefore
	// indistinguishable from one with no genres at all.
	LayoutLegacy
)

// ParseLayout maps a configuration value to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "dedicated", "":
		return LayoutDedicated, nil
	case "legacy":
		return LayoutLegacy, nil
	default:
		return 0, fmt.Errorf("unknown feature layout %q", s)
	}
}

func (l Layout) String() string {
	if l == LayoutLegacy {
		return "legacy"
	}
	return "dedicated"
}

// FeatureWidth returns the number of features encoded for vocab, label excluded.
func (l Layout) FeatureWidth(vocab *Vocabulary) int {
	if l == LayoutLegacy {
		return vocab.Len() + 1
	}
	return vocab.Len() + 2
}

// Vector is an encoded movie.
type Vector []float64

// Encoder turns movies into fixed-length vectors. It is stateless after
// construction and safe for concurrent use.
type Encoder struct {
	vocab   *Vocabulary
	layout  Layout
	horizon float64

	ratingSlot int
	yearSlot   int
	sentinel   int
}

// NewEncoder creates an encoder over DefaultVocabulary. horizon divides
// release years and must be positive.
func NewEncoder(layout Layout, horizon int) (*Encoder, error) {
	return NewEncoderWithVocabulary(DefaultVocabulary, layout, horizon)
}

// NewEncoderWithVocabulary creates an encoder over vocab.
func NewEncoderWithVocabulary(vocab *Vocabulary, layout Layout, horizon int) (*Encoder, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("year horizon must be positive, got %d", horizon)
	}

	e := &Encoder{
		vocab:      vocab,
		layout:     layout,
		horizon:    float64(horizon),
		ratingSlot: vocab.Len(),
		sentinel:   -1,
	}

	switch layout {
	case LayoutLegacy:
		sentinel, ok := vocab.Index(NoGenres)
		if !ok {
			return nil, fmt.Errorf("legacy layout needs %q in the vocabulary", NoGenres)
		}
		e.sentinel = sentinel
		e.yearSlot = sentinel
	default:
		e.yearSlot = vocab.Len() + 1
	}
	return e, nil
}

// Layout returns the encoder's layout.
func (e *Encoder) Layout() Layout {
	return e.layout
}

// Horizon returns the year divisor.
func (e *Encoder) Horizon() int {
	return int(e.horizon)
}

// FeatureWidth returns the length of a vector from Features.
func (e *Encoder) FeatureWidth() int {
	return e.layout.FeatureWidth(e.vocab)
}

// Width returns the length of a vector from Encode, label slot included.
func (e *Encoder) Width() int {
	return e.FeatureWidth() + 1
}

// FeatureNames names each slot of a vector from Features.
func (e *Encoder) FeatureNames() []string {
	names := make([]string, e.FeatureWidth())
	copy(names, e.vocab.genres)
	names[e.ratingSlot] = "rating"
	names[e.yearSlot] = "year"
	return names
}

// Features encodes m without a label.
func (e *Encoder) Features(m *movies.Movie) (Vector, error) {
	v := make(Vector, e.FeatureWidth(), e.Width())
	if err := e.fill(v, m); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode encodes m with label in the trailing slot.
func (e *Encoder) Encode(m *movies.Movie, label int) (Vector, error) {
	v, err := e.Features(m)
	if err != nil {
		return nil, err
	}
	return append(v, float64(label)), nil
}

func (e *Encoder) fill(v Vector, m *movies.Movie) error {
	if !m.Rating.Valid {
		return ErrMissingRating
	}
	if !m.Year.Valid {
		return ErrMissingYear
	}

	genres := mapset.NewThreadUnsafeSet(m.Genres...)
	for i, g := range e.vocab.genres {
		if i != e.sentinel && genres.Contains(g) {
			v[i] = 1
		}
	}

	v[e.ratingSlot] = NormalizeRating(m.Rating.Value)
	v[e.yearSlot] = m.Year.Value / e.horizon
	return nil
}

// NormalizeRating maps a rating onto [0,1] by dividing by MaxRating and
// formatting the quotient to four decimal places, so ties resolve on the
// exact binary value the way a "%.4f" format does.
func NormalizeRating(rating float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(rating/MaxRating, 'f', 4, 64), 64)
	if err != nil {
		return 0
	}
	return v
}

// HorizonFor returns the largest valid year across lists, capped at
// MaxYearHorizon, or LegacyYearHorizon when none has a year of at least one.
func HorizonFor(lists ...[]movies.Movie) int {
	latest := 0.0
	for _, list := range lists {
		for i := range list {
			if y := list[i].Year; y.Valid && y.Value > latest {
				latest = y.Value
			}
		}
	}
	if latest < 1 {
		return LegacyYearHorizon
	}
	return int(math.Min(latest, MaxYearHorizon))
}
