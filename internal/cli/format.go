// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/finplan/internal/calc"
	"github.com/theirongolddev/finplan/internal/profile"
)

// FormatMonths formats a month count, e.g. 1 -> "1 month", 14 -> "1y 2m".
func FormatMonths(n int) string {
	switch {
	case n <= 0:
		return "0 months"
	case n == 1:
		return "1 month"
	case n < 12:
		return fmt.Sprintf("%d months", n)
	case n%12 == 0:
		return fmt.Sprintf("%dy", n/12)
	default:
		return fmt.Sprintf("%dy %dm", n/12, n%12)
	}
}

// FormatRemaining formats a loan's remaining EMI count, which may be
// fractional when tenure or paid count is.
func FormatRemaining(months float64) string {
	return strconv.FormatFloat(months, 'f', -1, 64)
}

// FormatRate formats raw percentage input, e.g. "12" -> "12.0%".
func FormatRate(raw string) string {
	return fmt.Sprintf("%.1f%%", calc.Number(raw))
}

// FormatTriState renders a yes/no/unanswered flag.
func FormatTriState(v profile.TriState) string {
	switch v {
	case profile.Yes:
		return "Yes"
	case profile.No:
		return "No"
	default:
		return "-"
	}
}

// OrDash returns s, or "-" when it is empty.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
