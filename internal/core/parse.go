package core

// parse.go turns raw CSV text into Records.
//
// Failures come in two sizes:
//  1. Structural: empty input or missing required columns. Nothing is parsed.
//  2. Row-level: a row with the wrong number of cells is skipped and reported,
//     parsing continues with the next line.
//
// Row numbers in messages are 1-based source lines, so the header is row 1.

import (
	"fmt"
	"strings"
)

// Structural failure messages.
const (
	errNoDataRows     = "File is empty or has no data rows"
	errMissingColumns = "Missing required columns: %s"
)

// HeaderIndex maps lowercased column names to their position in the header.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from cleaned header names.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// MissingColumns returns the required columns absent from idx, in the order given.
func (idx HeaderIndex) MissingColumns(required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// ParseCSV parses comma-separated text whose first line is the header.
// Every required column must appear in the header (case-insensitive) or the
// whole parse fails. Blank lines are skipped without error.
func ParseCSV(text string, required []string) ParseResult {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return failed(errNoDataRows)
	}

	header := parseHeader(lines[0])
	if missing := MakeHeaderIndex(header).MissingColumns(required); len(missing) > 0 {
		return failed(fmt.Sprintf(errMissingColumns, strings.Join(missing, ", ")))
	}

	result := ParseResult{Data: []Record{}, Errors: []string{}}
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		values := SplitRow(line)
		if len(values) != len(header) {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Row %d: Column count mismatch (expected %d, got %d)",
				i+1, len(header), len(values),
			))
			continue
		}

		rec := make(Record, len(header))
		for j, name := range header {
			rec[name] = CoerceValue(values[j])
		}
		result.Data = append(result.Data, rec)
	}

	result.Success = len(result.Errors) == 0
	return result
}

// parseHeader splits the header line on every comma. Quotes are not honoured
// here, they are only stripped.
func parseHeader(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = CleanCell(p)
	}
	return parts
}

// SplitRow tokenizes one data line. A double quote toggles between the
// outside-quotes and inside-quotes states and is dropped; a comma splits the
// line only outside quotes.
func SplitRow(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			values = append(values, CleanCell(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	values = append(values, CleanCell(current.String()))

	return values
}

// CleanCell trims whitespace and removes every double quote.
func CleanCell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}

func failed(msg string) ParseResult {
	return ParseResult{
		Success: false,
		Data:    []Record{},
		Errors:  []string{msg},
	}
}

// isRowError reports whether a parse error refers to a single row.
func isRowError(msg string) bool {
	return strings.HasPrefix(msg, "Row ")
}
