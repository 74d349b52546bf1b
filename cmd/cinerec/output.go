// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/tomtom215/cinerec/internal/movies"
	"github.com/tomtom215/cinerec/internal/recommend"
)

// writeResult prints the recommendations of result in format.
func writeResult(w io.Writer, format string, result *recommend.Result) error {
	if format == outputTable {
		return writeTable(w, result)
	}
	return movies.Encode(w, result.Recommendations)
}

// writeTable prints one row per recommended movie with the forest's vote.
func writeTable(w io.Writer, result *recommend.Result) error {
	votes := lo.SliceToMap(result.Selected, func(s recommend.Selection) (string, float64) {
		return s.Title, s.Vote
	})

	table := tablewriter.NewWriter(w)
	table.Header("Title", "Genres", "Rating", "Year", "Vote")
	for i := range result.Recommendations {
		m := &result.Recommendations[i]
		row := []string{
			m.Title,
			strings.Join(m.Genres, "|"),
			formatNumber(m.Rating, 'f', -1),
			formatNumber(m.Year, 'f', 0),
			fmt.Sprintf("%.2f", votes[m.Title]),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func formatNumber(n movies.Number, fmtByte byte, prec int) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, fmtByte, prec, 64)
}
