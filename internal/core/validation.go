package core

// validation.go checks parsed rows against a dataset's field rules.
//
// Validation never stops early: every rule is checked on every row, so one row
// can produce several errors and the caller can show all problems at once.
// Values are not re-parsed; a numeric field that stayed a string fails its rule.

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/csvingest/internal/schema"
)

// validate evaluates FieldRule tags. It is safe for concurrent use.
var validate = validator.New()

// ValidationError is a single failed rule on a single row.
type ValidationError struct {
	Row     int    // 1-based row number; the first data row is 2
	Field   string // Field named by the rule
	Value   any    // Offending value, nil if the field was absent
	Message string // Human-readable message from the rule
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// CheckRows returns every rule failure across rows, in row then rule order.
func CheckRows(rows []Record, rules []schema.FieldRule) []ValidationError {
	var errs []ValidationError
	for i, row := range rows {
		for _, rule := range rules {
			value, present := row[rule.Field]
			if present && checkValue(value, rule) {
				continue
			}
			errs = append(errs, ValidationError{
				Row:     i + 2,
				Field:   rule.Field,
				Value:   value,
				Message: rule.Message,
			})
		}
	}
	return errs
}

// ValidateRows returns "Row N: message" strings for every rule failure.
// The result is empty, not nil, when all rows pass.
func ValidateRows(rows []Record, rules []schema.FieldRule) []string {
	errs := CheckRows(rows, rules)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

// ValidateEnrolmentData checks District plus non-negative Total, SSMO, FMA and HHA_GDA.
func ValidateEnrolmentData(rows []Record) []string {
	return ValidateRows(rows, schema.EnrolmentRules)
}

// ValidateDensityData checks District plus strictly positive Population and Area_SqKm.
func ValidateDensityData(rows []Record) []string {
	return ValidateRows(rows, schema.DensityRules)
}

// ValidateDistanceData checks District plus non-negative TC1_Distance_Km and TC2_Distance_Km.
func ValidateDistanceData(rows []Record) []string {
	return ValidateRows(rows, schema.DistanceRules)
}

// checkValue applies the kind check, then the rule's validator tag.
func checkValue(value any, rule schema.FieldRule) bool {
	var typed any
	switch rule.Kind {
	case schema.KindText:
		s, ok := value.(string)
		if !ok {
			return false
		}
		typed = s
	case schema.KindNumber:
		f, ok := value.(float64)
		if !ok {
			return false
		}
		typed = f
	default:
		return false
	}

	if rule.Tag == "" {
		return true
	}
	return validate.Var(typed, rule.Tag) == nil
}
