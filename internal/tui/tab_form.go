package tui

import (
	"strings"

	"github.com/theirongolddev/finplan/internal/calc"
	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// column is one editable field as shown on a list tab.
type column struct {
	field       profile.Field
	label       string
	placeholder string
}

var columns = map[profile.List][]column{
	profile.Incomes: {
		{profile.FieldSource, "Source", "Salary"},
		{profile.FieldAmount, "Amount (₹)", "85000"},
	},
	profile.Expenses: {
		{profile.FieldType, "Type", "Groceries"},
		{profile.FieldAmount, "Amount (₹)", "12000"},
	},
	profile.Loans: {
		{profile.FieldName, "Loan Name", "Home loan"},
		{profile.FieldAmount, "Total Amount (₹)", "2500000"},
		{profile.FieldInterest, "Interest Rate (%)", "8.5"},
		{profile.FieldTenureMonths, "Tenure (Months)", "240"},
		{profile.FieldMonthlyEMI, "Monthly EMI (₹)", "21700"},
		{profile.FieldTotalPaidEMI, "Total EMI Paid", "36"},
	},
	profile.Goals: {
		{profile.FieldDescription, "Goal Description", "Child's education"},
		{profile.FieldTimeframe, "Timeframe (Year)", "2035"},
		{profile.FieldTargetAmount, "Target Amount (₹)", "2000000"},
	},
	profile.Investments: {
		{profile.FieldType, "Type (e.g. MF/Stock)", "MF"},
		{profile.FieldAmount, "Amount (₹)", "150000"},
		{profile.FieldReturnRate, "Expected Return %", "11"},
	},
	profile.SIPs: {
		{profile.FieldName, "SIP Name", "Nifty index"},
		{profile.FieldMonthly, "Monthly SIP (₹)", "5000"},
		{profile.FieldStartDate, "Start Month (YYYY-MM)", "2024-04"},
		{profile.FieldExpectedReturn, "Expected Return %", "12"},
	},
	profile.HealthIssues: {
		{profile.FieldDescription, "Issue Description", "Diabetes"},
		{profile.FieldEstimatedCost, "Estimated Cost (₹)", "40000"},
	},
}

var sectionTitles = map[profile.List]string{
	profile.Incomes:      "Income",
	profile.Expenses:     "Expenses",
	profile.Loans:        "Loans",
	profile.Goals:        "Goals",
	profile.Investments:  "Investments",
	profile.SIPs:         "SIP Portfolio",
	profile.HealthIssues: "Health Issues",
}

// editTarget identifies the value the text input writes back to.
type editTarget struct {
	list  profile.List
	row   int
	field profile.Field
	rent  bool
}

func newFieldInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// healthLocked reports whether the health issue list is hidden behind an
// unanswered or negative "any major health issues" question.
func (a App) healthLocked() bool {
	return a.activeTab == tabHealth && a.store.Profile().HasHealthIssues != profile.Yes
}

func (a App) updateListKey(key string) (tea.Model, tea.Cmd) {
	if !hasProfileList(a.activeTab) {
		return a, nil
	}
	list := tabList(a.activeTab)
	cols := columns[list]

	if a.healthLocked() {
		switch key {
		case "a", "d", "enter":
			a.setStatus("Answer yes to \"Any major health issues?\" on Protection first", true)
		}
		return a, nil
	}

	switch key {
	case "j", "down":
		return a.moveRow(1), nil
	case "k", "up":
		return a.moveRow(-1), nil
	case "h", "left":
		a.field = clamp(a.field-1, 0, len(cols)-1)
		return a, nil
	case "l", "right":
		a.field = clamp(a.field+1, 0, len(cols)-1)
		return a, nil
	case "a":
		if a.store.AddItem(list, nil) {
			a.rows[a.activeTab] = a.store.Profile().Len(list) - 1
			a.setStatus("Row added", false)
		}
		return a, nil
	case "d":
		row := a.rows[a.activeTab]
		if a.store.RemoveItem(list, row) {
			n := a.store.Profile().Len(list)
			a.rows[a.activeTab] = clamp(row, 0, max(n-1, 0))
			a.setStatus("Row removed", false)
		}
		return a, nil
	case "enter":
		return a.startFieldEdit(list, cols)
	}
	return a, nil
}

func (a App) startFieldEdit(list profile.List, cols []column) (tea.Model, tea.Cmd) {
	p := a.store.Profile()
	row := a.rows[a.activeTab]
	rec, ok := p.Record(list, row)
	if !ok || len(cols) == 0 {
		return a, nil
	}
	col := cols[clamp(a.field, 0, len(cols)-1)]
	value, _ := rec.Get(col.field)

	a.editing = true
	a.edit = editTarget{list: list, row: row, field: col.field}
	a.input = newFieldInput(col.placeholder, value)
	return a, textinput.Blink
}

func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := a.input.Value()
		if a.edit.rent {
			a.store.SetMonthlyRent(value)
		} else {
			a.store.UpdateField(a.edit.list, a.edit.row, a.edit.field, value)
		}
		a.editing = false
		a.setStatus("Draft saved", false)
		return a, nil
	case "esc":
		a.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) renderListTab(cw int) string {
	t := theme.Active
	list := tabList(a.activeTab)
	p := a.store.Profile()

	if a.activeTab == tabHealth && p.HasHealthIssues != profile.Yes {
		note := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"Health issues are only collected when \"Any major health issues?\" is answered yes.\nSet it on the Protection tab (7).")
		return components.ContentCard(sectionTitles[list], note, cw)
	}

	cols := columns[list]
	headers := make([]string, 0, len(cols)+3)
	for _, c := range cols {
		headers = append(headers, c.label)
	}

	var extra func(i int) []string
	switch list {
	case profile.Loans:
		headers = append(headers, "Remaining EMIs", "Approx. Balance")
		loans := a.store.LoanSummaries()
		extra = func(i int) []string {
			if i >= len(loans) {
				return []string{"", ""}
			}
			s := loans[i]
			balance := "-"
			if s.HasBalance {
				balance = calc.FormatCurrency(s.RemainingBalance)
			}
			return []string{cli.FormatRemaining(s.RemainingMonths), balance}
		}
	case profile.SIPs:
		summaries := a.store.Summaries()
		headers = append(headers, "Months", "Invested", "Est. Value")
		extra = func(i int) []string {
			if i >= len(summaries) {
				return []string{"", "", ""}
			}
			s := summaries[i]
			return []string{cli.FormatMonths(s.Months), calc.FormatCurrency(s.TotalInvested), calc.FormatCurrency(s.EstimatedValue)}
		}
	}

	n := p.Len(list)
	cells := make([][]string, n)
	for i := 0; i < n; i++ {
		rec, _ := p.Record(list, i)
		for _, c := range cols {
			v, _ := rec.Get(c.field)
			cells[i] = append(cells[i], v)
		}
		if extra != nil {
			cells[i] = append(cells[i], extra(i)...)
		}
	}

	body := a.renderGrid(headers, cells, len(cols), cw-4)
	if n == 0 {
		body += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("No rows. Press a to add one.")
	}
	card := components.ContentCard(sectionTitles[list], body, cw)
	if a.editing {
		card = components.FocusedCard(sectionTitles[list], body, cw)
	}

	if list == profile.SIPs && n > 0 {
		invested, estimated := a.store.Totals()
		card = lipgloss.JoinVertical(lipgloss.Left, card, components.MetricCardRow([]components.Metric{
			{Label: "Total Invested", Value: calc.FormatCurrency(invested)},
			{Label: "Estimated Value", Value: calc.FormatCurrency(estimated)},
			{Label: "Estimated Gain", Value: calc.FormatCurrency(estimated - invested)},
		}, cw))
	}
	return card
}

// renderGrid lays out a table whose first editable columns follow the
// cursor; trailing columns are computed and read-only.
func (a App) renderGrid(headers []string, cells [][]string, editable, width int) string {
	t := theme.Active

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(lipgloss.Width(h), 6)
	}
	for _, row := range cells {
		for i, v := range row {
			widths[i] = max(widths[i], min(lipgloss.Width(v), 28))
		}
	}
	// Shrink evenly when the grid overflows the card.
	for total(widths, 2) > width {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 6 {
			break
		}
		widths[widest]--
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	computedStyle := lipgloss.NewStyle().Foreground(t.Gain)
	rowStyle := lipgloss.NewStyle().Background(t.SurfaceHover)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(padRight(truncStr(h, widths[i]), widths[i])))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	cur := a.rows[a.activeTab]
	for r, row := range cells {
		for i, v := range row {
			text := truncStr(v, widths[i])
			style := valueStyle
			switch {
			case i >= editable:
				style = computedStyle
			case v == "":
				text = "·"
				style = dimStyle
			}

			if r == cur && i == a.field && i < editable {
				if a.editing {
					b.WriteString(padRight(a.input.View(), widths[i]))
				} else {
					b.WriteString(cursorStyle.Render(padRight(text, widths[i])))
				}
			} else if r == cur {
				b.WriteString(rowStyle.Inherit(style).Render(padRight(text, widths[i])))
			} else {
				b.WriteString(style.Render(padRight(text, widths[i])))
			}
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func total(widths []int, gap int) int {
	sum := 0
	for _, w := range widths {
		sum += w + gap
	}
	return sum
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
