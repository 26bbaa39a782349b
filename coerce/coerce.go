// Package coerce turns spreadsheet and report cells of unknown shape
// into typed values. Source reports are inconsistently formatted, so a
// malformed cell resolves to the zero value instead of failing the
// whole record.
package coerce

import (
	"strconv"
	"strings"
)

const nbsp = " "

// Clean normalizes a raw cell: non-breaking spaces become plain spaces,
// surrounding whitespace is trimmed and the spreadsheet formula wrapper
// "=(...)" is stripped down to the enclosed text.
func Clean(raw string) string {
	v := strings.TrimSpace(strings.ReplaceAll(raw, nbsp, " "))
	if strings.HasPrefix(v, "=(") && strings.HasSuffix(v, ")") {
		inner := v[2 : len(v)-1]
		if _, err := strconv.Atoi(strings.TrimSpace(inner)); err == nil {
			return strings.TrimSpace(inner)
		}
	}
	return v
}

// Int coerces a raw cell to an integer. Thousands separators, percent
// suffixes, formula artifacts and surrounding parentheses are absorbed;
// dashes, "N/A" and empty cells count as zero. It never fails.
func Int(raw string) int {
	v := scrub(raw)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// Float coerces a raw cell to a float, with the same tolerance as Int.
func Float(raw string) float64 {
	v := scrub(raw)
	if v == "" {
		return 0.0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0.0
	}
	return f
}

func scrub(raw string) string {
	v := Clean(raw)
	v = strings.ReplaceAll(v, ",", "")
	v = strings.ReplaceAll(v, "=", "")
	v = strings.TrimSuffix(v, "%")
	v = strings.TrimSpace(v)
	if v == "-" || strings.EqualFold(v, "N/A") {
		return "0"
	}
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") && len(v) > 1 {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}
