// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

// Package movies decodes and encodes the JSON movie documents cinerec reads:
// a viewing history (movies with a liked flag) and a catalog to recommend from.
//
// Numeric fields are read leniently. Rating and year may arrive as JSON
// numbers or as numeric strings, the way Postgres NUMERIC columns are
// serialized. A field that is missing, null or not numeric is marked invalid
// rather than failing the whole document; callers decide whether to drop the
// movie. Each decoded movie keeps its original JSON object so that a
// recommendation can be written back exactly as it was received.
package movies

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// Number is a numeric field that may be absent or unparseable.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a valid Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Label is the liked flag of a history movie: 1 liked, 0 not liked.
type Label struct {
	Value int
	Valid bool
}

// Liked and Disliked are the two valid labels.
var (
	Liked    = Label{Value: 1, Valid: true}
	Disliked = Label{Value: 0, Valid: true}
)

// Movie is one entry of a history or catalog document.
type Movie struct {
	Title  string
	Genres []string
	Rating Number
	Year   Number
	Liked  Label

	raw json.RawMessage
}

// Raw returns the JSON object the movie was decoded from, or nil for a
// movie built in code.
func (m *Movie) Raw() json.RawMessage {
	return m.raw
}

// wireMovie is the JSON shape of a movie before lenient parsing.
type wireMovie struct {
	Title  any `json:"title"`
	Genres any `json:"genres"`
	Rating any `json:"rating"`
	Year   any `json:"year"`
	Liked  any `json:"liked"`
}

// UnmarshalJSON decodes a movie object, keeping the raw bytes.
func (m *Movie) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("movie must be a JSON object, got %.20q", data)
	}

	var w wireMovie
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*m = Movie{
		Title:  parseTitle(w.Title),
		Genres: parseGenres(w.Genres),
		Rating: parseNumber(w.Rating),
		Year:   parseYear(w.Year),
		Liked:  parseLabel(w.Liked),
		raw:    append(json.RawMessage(nil), data...),
	}
	return nil
}

// MarshalJSON re-emits the original object when there is one.
func (m Movie) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}

	out := map[string]any{
		"title":  m.Title,
		"genres": lo.Ternary(m.Genres == nil, []string{}, m.Genres),
		"rating": nil,
		"year":   nil,
	}
	if m.Rating.Valid {
		out["rating"] = m.Rating.Value
	}
	if m.Year.Valid {
		out["year"] = int64(m.Year.Value)
	}
	if m.Liked.Valid {
		out["liked"] = m.Liked.Value
	}
	return json.Marshal(out)
}

func parseTitle(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// parseGenres accepts a list of strings (null entries skipped) or a single
// pipe-separated string such as "Comedy|Horror".
func parseGenres(v any) []string {
	switch g := v.(type) {
	case []any:
		return lo.FilterMap(g, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok && s != ""
		})
	case string:
		return lo.Compact(lo.Map(strings.Split(g, "|"), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	default:
		return nil
	}
}

func parseNumber(v any) Number {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return Number{}
		}
		return finite(f)
	default:
		return Number{}
	}
}

// parseYear truncates numeric years toward zero. String years must be
// integers.
func parseYear(v any) Number {
	switch y := v.(type) {
	case float64:
		return finite(math.Trunc(y))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return Number{}
		}
		return Num(float64(i))
	default:
		return Number{}
	}
}

func parseLabel(v any) Label {
	switch l := v.(type) {
	case bool:
		return lo.Ternary(l, Liked, Disliked)
	case float64:
		switch l {
		case 1:
			return Liked
		case 0:
			return Disliked
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(l)) {
		case "1", "true", "t":
			return Liked
		case "0", "false", "f":
			return Disliked
		}
	}
	return Label{}
}

func finite(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Num(f)
}

// String identifies the movie in log lines.
func (m *Movie) String() string {
	if m.Year.Valid {
		return fmt.Sprintf("%s (%d)", m.Title, int64(m.Year.Value))
	}
	return m.Title
}
