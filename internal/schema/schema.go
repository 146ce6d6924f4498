// Package schema declares the column contracts for each uploadable dataset.
//
// A dataset contract has two halves: the columns a file must carry in its header
// (checked by the parser before any row is read) and the per-field rules run over
// the parsed rows. Rules are plain data so the web layer can describe them and the
// core package can evaluate them.
package schema

// FieldKind is the Go type a parsed cell must hold for a rule to apply.
type FieldKind int

const (
	// KindText fields must hold a string.
	KindText FieldKind = iota
	// KindNumber fields must hold a float64.
	KindNumber
)

// String returns the kind name used in dataset descriptions.
func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// FieldRule validates one field of a parsed row.
type FieldRule struct {
	Field   string    // Header name as it appears in the row mapping
	Kind    FieldKind // Required Go type of the value
	Tag     string    // validator/v10 tag applied to the typed value
	Message string    // Appended to "Row N: " when the rule fails
}

// Columns returns the distinct field names referenced by rules, in rule order.
func Columns(rules []FieldRule) []string {
	seen := make(map[string]bool, len(rules))
	cols := make([]string, 0, len(rules))
	for _, r := range rules {
		if seen[r.Field] {
			continue
		}
		seen[r.Field] = true
		cols = append(cols, r.Field)
	}
	return cols
}

// districtRule is shared by every dataset: rows are keyed by district.
var districtRule = FieldRule{
	Field:   "District",
	Kind:    KindText,
	Tag:     "required",
	Message: "District name is required",
}

func nonNegative(field string) FieldRule {
	return FieldRule{
		Field:   field,
		Kind:    KindNumber,
		Tag:     "gte=0",
		Message: field + " must be a non-negative number",
	}
}

func positive(field string) FieldRule {
	return FieldRule{
		Field:   field,
		Kind:    KindNumber,
		Tag:     "gt=0",
		Message: field + " must be a positive number",
	}
}
