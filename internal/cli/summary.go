package cli

import (
	"strings"

	"github.com/theirongolddev/finplan/internal/calc"
	"github.com/theirongolddev/finplan/internal/profile"
)

// SIPTable builds the SIP projection table with a totals row.
func SIPTable(summaries []profile.SipSummary) Table {
	t := Table{
		Title:   "SIPs",
		Headers: []string{"Name", "Months", "Invested", "Est. Value"},
	}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			s.Name,
			FormatMonths(s.Months),
			calc.FormatCurrency(s.TotalInvested),
			calc.FormatCurrency(s.EstimatedValue),
		})
	}
	if len(summaries) > 0 {
		invested, estimated := profile.Totals(summaries)
		t.Footer = []string{"Total", "", calc.FormatCurrency(invested), calc.FormatCurrency(estimated)}
	}
	return t
}

// LoanTable builds the loan table with remaining EMIs and approximate
// remaining balance.
func LoanTable(loans []profile.Loan) Table {
	t := Table{
		Title:   "Loans",
		Headers: []string{"Name", "Amount", "EMI", "Remaining EMIs", "Approx. Balance"},
	}
	for _, l := range loans {
		s := l.Summary()
		balance := "-"
		if s.HasBalance {
			balance = calc.FormatCurrency(s.RemainingBalance)
		}
		t.Rows = append(t.Rows, []string{
			OrDash(s.Name),
			calc.FormatRaw(l.Amount),
			calc.FormatRaw(l.MonthlyEMI),
			FormatRemaining(s.RemainingMonths),
			balance,
		})
	}
	return t
}

// RenderProfile renders the whole profile as titled tables.
func RenderProfile(p profile.Profile, summaries []profile.SipSummary) string {
	var b strings.Builder

	b.WriteString(RenderTable(amountTable("Income", "Source", p.Incomes, func(i profile.Income) (string, string) {
		return i.Source, i.Amount
	})))
	b.WriteString(RenderTable(amountTable("Expenses", "Type", p.Expenses, func(e profile.Expense) (string, string) {
		return e.Type, e.Amount
	})))
	b.WriteString(RenderTable(LoanTable(p.Loans)))

	goals := Table{Title: "Goals", Headers: []string{"Goal", "Timeframe", "Target"}}
	for _, g := range p.Goals {
		goals.Rows = append(goals.Rows, []string{OrDash(g.Description), OrDash(g.Timeframe), calc.FormatRaw(g.TargetAmount)})
	}
	b.WriteString(RenderTable(goals))

	inv := Table{Title: "Investments", Headers: []string{"Type", "Amount", "Return"}}
	for _, i := range p.Investments {
		inv.Rows = append(inv.Rows, []string{OrDash(i.Type), calc.FormatRaw(i.Amount), FormatRate(i.ReturnRate)})
	}
	b.WriteString(RenderTable(inv))

	b.WriteString(RenderTable(SIPTable(summaries)))

	b.WriteString("\n")
	b.WriteString(RenderKV([][2]string{
		{"Health insurance", FormatTriState(p.HasHealthInsurance)},
		{"Life insurance", FormatTriState(p.HasLifeInsurance)},
		{"Owns house", FormatTriState(p.OwnsHouse)},
		{"Monthly rent", rent(p)},
		{"Health issues", FormatTriState(p.HasHealthIssues)},
	}))
	if p.HasHealthIssues == profile.Yes {
		issues := Table{Title: "Health Issues", Headers: []string{"Issue", "Est. Cost"}}
		for _, h := range p.HealthIssues {
			issues.Rows = append(issues.Rows, []string{OrDash(h.Description), calc.FormatRaw(h.EstimatedCost)})
		}
		b.WriteString(RenderTable(issues))
	}
	return b.String()
}

func rent(p profile.Profile) string {
	if p.OwnsHouse != profile.No {
		return "-"
	}
	return calc.FormatRaw(p.MonthlyRent)
}

func amountTable[T any](title, label string, rows []T, cells func(T) (string, string)) Table {
	t := Table{Title: title, Headers: []string{label, "Amount"}}
	for _, r := range rows {
		name, amount := cells(r)
		t.Rows = append(t.Rows, []string{OrDash(name), calc.FormatRaw(amount)})
	}
	return t
}
