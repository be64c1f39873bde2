// Package pricedata parses raw price CSV data into date-ordered price series.
// It is a boundary adapter: the return engine receives its output and never
// touches raw CSV itself. Individual bad rows are skipped with a warning;
// parsing fails only when the schema is wrong or every row is unusable.
package pricedata

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
)

// SkippedRow records a single input row that was dropped during parsing.
type SkippedRow struct {
	Line   int
	Reason string
}

// nativeLayouts are tried in order before falling back to the
// split-and-disambiguate heuristic.
var nativeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseCSV reads price rows from r and returns a date-ascending price series.
//
// The header row must contain Date and Close columns (any column order,
// extra columns ignored); otherwise parsing fails with ErrMalformedSchema.
// Rows with unparseable dates or non-numeric prices are dropped and reported
// in the returned SkippedRow slice. If every data row is dropped, parsing
// fails with ErrEmptyOrInvalidData.
func ParseCSV(r io.Reader) ([]model.PricePoint, []SkippedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrEmptyOrInvalidData, err)
	}

	rows := [][]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return ParseRows(header, rows)
}

// ParseRows parses already-split rows against the given header.
// See ParseCSV for the contract; the line numbers in SkippedRow are
// 1-based over the full input including the header row.
func ParseRows(header []string, rows [][]string) ([]model.PricePoint, []SkippedRow, error) {
	dateIdx, closeIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Date":
			dateIdx = i
		case "Close":
			closeIdx = i
		}
	}
	if dateIdx == -1 || closeIdx == -1 {
		return nil, nil, apperrors.ErrMalformedSchema
	}

	series := []model.PricePoint{}
	skipped := []SkippedRow{}

	for i, row := range rows {
		line := i + 2 // header is line 1

		maxIdx := dateIdx
		if closeIdx > maxIdx {
			maxIdx = closeIdx
		}
		if len(row) <= maxIdx {
			skipped = append(skipped, SkippedRow{Line: line, Reason: "too few columns"})
			continue
		}

		date, err := ParseFlexibleDate(strings.TrimSpace(row[dateIdx]))
		if err != nil {
			skipped = append(skipped, SkippedRow{Line: line, Reason: fmt.Sprintf("bad date %q", row[dateIdx])})
			continue
		}

		closeVal, err := strconv.ParseFloat(strings.TrimSpace(row[closeIdx]), 64)
		if err != nil {
			skipped = append(skipped, SkippedRow{Line: line, Reason: fmt.Sprintf("bad close %q", row[closeIdx])})
			continue
		}

		series = append(series, model.PricePoint{Date: date, Close: closeVal})
	}

	if len(series) == 0 {
		return nil, skipped, apperrors.ErrEmptyOrInvalidData
	}

	sort.SliceStable(series, func(a, b int) bool {
		return series[a].Date.Before(series[b].Date)
	})

	return series, skipped, nil
}

// ParseFlexibleDate parses a date string at day granularity, returning
// midnight UTC. Native layouts are tried first; on failure the string is
// split on "-" or "/" into three numeric parts and disambiguated with the
// heuristic: a 4-digit first segment means year-month-day, otherwise
// day-month-year.
//
// The heuristic cannot tell MM-DD-YYYY from DD-MM-YYYY when the first
// segment is not 4 digits; such input is interpreted as day-month-year.
// This ambiguity is inherited from the data feeds and deliberately not
// resolved here. Stricter validation belongs upstream.
func ParseFlexibleDate(s string) (time.Time, error) {
	for _, layout := range nativeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), nil
		}
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
		}
		nums[i] = n
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		day, month, year = nums[0], nums[1], nums[2]
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %q", s)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
