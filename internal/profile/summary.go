package profile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/calc"
)

// SipSummary is the live projection of one SIP. Months always reflects the
// clock at computation time and is never stored.
type SipSummary struct {
	Name           string  `json:"name"`
	Months         int     `json:"months"`
	TotalInvested  float64 `json:"totalInvested"`
	EstimatedValue float64 `json:"estimatedValue"`
}

// SummarizeSIP projects s as of now.
func SummarizeSIP(s SIP, now time.Time) SipSummary {
	months := calc.MonthsBetween(s.StartDate, now)
	monthly := calc.Number(s.Monthly)

	invested := toDecimal(monthly).Mul(decimal.NewFromInt(int64(months)))

	name := s.Name
	if name == "" {
		name = "-"
	}

	return SipSummary{
		Name:           name,
		Months:         months,
		TotalInvested:  fromDecimal(invested),
		EstimatedValue: calc.SIPFutureValue(monthly, months, calc.Number(s.ExpectedReturn)),
	}
}

// SummarizeSIPs returns one summary per SIP, in order.
func SummarizeSIPs(sips []SIP, now time.Time) []SipSummary {
	out := make([]SipSummary, len(sips))
	for i, s := range sips {
		out[i] = SummarizeSIP(s, now)
	}
	return out
}

// Totals sums invested and estimated value across summaries.
func Totals(summaries []SipSummary) (invested, estimated float64) {
	inv, est := decimal.Zero, decimal.Zero
	for _, s := range summaries {
		inv = inv.Add(toDecimal(s.TotalInvested))
		est = est.Add(toDecimal(s.EstimatedValue))
	}
	return fromDecimal(inv), fromDecimal(est)
}

// LoanSummary is the repayment position of a loan.
type LoanSummary struct {
	Name             string
	RemainingMonths  float64
	RemainingBalance float64
	// HasBalance is false when no EMI is set or nothing remains, in which
	// case RemainingBalance is zero and should not be shown.
	HasBalance bool
}

// RemainingMonths is tenure minus EMIs paid, never negative.
func (l Loan) RemainingMonths() float64 {
	rem := calc.OrZero(calc.Number(l.TenureMonths) - calc.Number(l.TotalPaidEMI))
	if rem < 0 {
		return 0
	}
	return rem
}

// Summary computes l's remaining months and approximate balance.
func (l Loan) Summary() LoanSummary {
	rem := l.RemainingMonths()
	ls := LoanSummary{Name: l.Name, RemainingMonths: rem}
	if l.MonthlyEMI != "" && rem > 0 {
		bal := toDecimal(rem).Mul(toDecimal(calc.Number(l.MonthlyEMI)))
		ls.RemainingBalance = fromDecimal(bal)
		ls.HasBalance = true
	}
	return ls
}

// toDecimal converts f, treating NaN and infinities as zero;
// decimal.NewFromFloat panics on them.
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(calc.OrZero(f))
}

// fromDecimal converts d back to a float, zero when it overflows float64.
func fromDecimal(d decimal.Decimal) float64 {
	return calc.OrZero(d.InexactFloat64())
}
