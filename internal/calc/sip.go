package calc

import (
	"math"
	"strconv"
	"strings"
)

// SIPFutureValue projects a systematic investment plan of monthly
// contributions over months at a nominal annual return (12 means 12%/yr).
//
// The ordinary-annuity future value is multiplied by one extra (1+r) so the
// last instalment also earns a month of growth:
//
//	FV = P * ((1+r)^n - 1) / r * (1+r),  r = annual/100/12
//
// A zero rate degrades to the plain sum of contributions.
func SIPFutureValue(monthly float64, months int, annualPercent float64) float64 {
	if !finite(monthly) || monthly <= 0 || months <= 0 {
		return 0
	}
	if !finite(annualPercent) {
		annualPercent = 0
	}

	r := annualPercent / 100 / 12
	if r == 0 {
		return OrZero(monthly * float64(months))
	}

	n := float64(months)
	return OrZero(monthly * ((math.Pow(1+r, n) - 1) / r) * (1 + r))
}

// Number coerces raw form input to a float. Surrounding whitespace is
// ignored; empty, unparseable, NaN and infinite input all become 0.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return 0
	}
	return f
}

// Int coerces raw input to a whole number, truncating any fraction.
func Int(raw string) int {
	return int(Number(raw))
}

// OrZero returns f, or 0 when f is NaN or infinite.
func OrZero(f float64) float64 {
	if !finite(f) {
		return 0
	}
	return f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
