package core

import (
	"math"
	"strconv"
)

// ParseLeadingFloat parses the longest numeric prefix of s, the way a browser's
// parseFloat does: "42abc" yields 42, "abc" yields false.
//
// Leading whitespace and an optional sign are accepted. The mantissa needs at
// least one digit; an exponent is only consumed when it has digits. Prefixes
// that overflow float64 report false so values stay JSON-encodable.
func ParseLeadingFloat(s string) (float64, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	f, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceValue returns the float64 value of a cleaned cell when it has a numeric
// prefix, otherwise the cell itself.
func CoerceValue(cell string) any {
	if f, ok := ParseLeadingFloat(cell); ok {
		return f
	}
	return cell
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
