package core

import (
	"time"

	"github.com/JonMunkholm/csvingest/internal/schema"
)

// Record maps header names to cell values. A value is a float64 when the cell
// has a numeric prefix, otherwise the cleaned string.
type Record map[string]any

// ParseResult is the outcome of parsing one CSV text.
// Success is true iff Errors is empty. Data keeps every accepted row even when
// other rows failed; a structural failure leaves it empty.
type ParseResult struct {
	Success bool     `json:"success"`
	Data    []Record `json:"data"`
	Errors  []string `json:"errors"`
}

// Dataset describes one uploadable dataset: the columns its header must carry
// and the rules its rows must satisfy.
type Dataset struct {
	Key             string             `json:"key"`
	Label           string             `json:"label"`
	Description     string             `json:"description,omitempty"`
	RequiredColumns []string           `json:"requiredColumns"`
	Rules           []schema.FieldRule `json:"-"`
}

// Validate runs the dataset's field rules over parsed rows.
func (d Dataset) Validate(rows []Record) []string {
	return ValidateRows(rows, d.Rules)
}

// IngestResult is everything an upload dialog needs to render feedback.
type IngestResult struct {
	ID               string        `json:"id"`
	Dataset          string        `json:"dataset"`
	FileName         string        `json:"fileName"`
	Parse            ParseResult   `json:"parse"`
	ValidationErrors []string      `json:"validationErrors"`
	Valid            bool          `json:"valid"`
	Duration         time.Duration `json:"durationNs"`
}

// Errors returns parse errors followed by validation errors.
func (r *IngestResult) Errors() []string {
	out := make([]string, 0, len(r.Parse.Errors)+len(r.ValidationErrors))
	out = append(out, r.Parse.Errors...)
	return append(out, r.ValidationErrors...)
}
