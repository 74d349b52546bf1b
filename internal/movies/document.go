// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package movies

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// ErrMalformedDocument is returned when a document is not a JSON array of
// movie objects.
var ErrMalformedDocument = errors.New("malformed movie document")

// Decode reads a JSON array of movie objects from r.
func Decode(r io.Reader) ([]Movie, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read movie document: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedDocument)
	}

	var list []Movie
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if list == nil {
		list = []Movie{}
	}
	return list, nil
}

// LoadFile decodes the movie document at path.
func LoadFile(path string) ([]Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	list, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return list, nil
}

// Encode writes list as a JSON array followed by a newline. Decoded movies
// are written as the objects they were read from. An empty list is "[]".
func Encode(w io.Writer, list []Movie) error {
	if list == nil {
		list = []Movie{}
	}
	if err := json.NewEncoder(w).Encode(list); err != nil {
		return fmt.Errorf("encode movies: %w", err)
	}
	return nil
}

// Titles returns the title of every movie, in order.
func Titles(list []Movie) []string {
	return lo.Map(list, func(m Movie, _ int) string {
		return m.Title
	})
}

// DuplicateTitles returns titles that appear more than once, in order of
// first appearance.
func DuplicateTitles(list []Movie) []string {
	return lo.FindDuplicates(Titles(list))
}
