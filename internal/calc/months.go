// Package calc provides the pure financial calculations behind the planner:
// month counting, SIP projection and rupee formatting.
package calc

import (
	"strconv"
	"strings"
	"time"
)

// MonthsBetween returns the number of whole months from the first day of
// startMonth ("YYYY-MM") to the first day of now's month, counting the start
// month itself. Empty or malformed input and start months in the future
// yield 0.
func MonthsBetween(startMonth string, now time.Time) int {
	y, m, ok := parseYearMonth(startMonth)
	if !ok {
		return 0
	}

	// time.Date normalizes out-of-range months (13 -> January next year).
	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, now.Location())
	months := (now.Year()-start.Year())*12 + int(now.Month()-start.Month()) + 1
	if months < 0 {
		return 0
	}
	return months
}

// parseYearMonth splits "YYYY-MM" (anything after a second dash is ignored).
// Zero or unparseable parts are rejected.
func parseYearMonth(s string) (year, month int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}

	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return 0, 0, false
	}

	y, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || y == 0 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m == 0 {
		return 0, 0, false
	}
	return y, m, true
}
