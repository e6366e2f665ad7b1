// Package validate implements bound-checked integer cleaning for the
// month/year-of-birth fields with null-on-invalid semantics.
package validate

import (
	"strconv"
	"strings"
)

// Default bounds. Years outside the valid range are placeholder nulls in the
// source data, not genuine dates.
const (
	MonthMin = 1
	MonthMax = 12
	YearMin  = 1902
	YearMax  = 2010
)

// CleanInteger parses raw as a base-10 integer (sign and leading zeros
// allowed, surrounding whitespace ignored) and returns its canonical decimal
// form. Anything unparseable or outside [min, max] yields the empty string.
// CleanInteger never fails.
func CleanInteger(raw string, min, max int) string {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if n < min || n > max {
		return ""
	}
	return strconv.Itoa(n)
}

// CleanMonth cleans a month-of-birth value using the default bounds.
func CleanMonth(raw string) string {
	return CleanInteger(raw, MonthMin, MonthMax)
}

// CleanYear cleans a year-of-birth value using the default bounds.
func CleanYear(raw string) string {
	return CleanInteger(raw, YearMin, YearMax)
}
