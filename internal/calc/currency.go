package calc

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

// FormatCurrency renders amount in rupees with Indian digit grouping
// (12,34,567): the last three digits form one group, every group to the left
// has two. Amounts are rounded to whole rupees, halves away from zero.
// NaN and infinities render as "₹0".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return CurrencySymbol + "0"
	}

	rounded := decimal.NewFromFloat(amount).Round(0)
	if rounded.IsZero() {
		return CurrencySymbol + "0"
	}

	digits := rounded.Abs().String()
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return CurrencySymbol + sign + groupIndian(digits)
}

// FormatCurrencyPtr formats a possibly missing amount; nil renders as "₹0".
func FormatCurrencyPtr(amount *float64) string {
	if amount == nil {
		return CurrencySymbol + "0"
	}
	return FormatCurrency(*amount)
}

// FormatRaw formats raw form input, treating non-numeric text as zero.
func FormatRaw(raw string) string {
	return FormatCurrency(Number(raw))
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
