package tui

import (
	"strings"

	"github.com/theirongolddev/finplan/internal/cli"
	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var flagQuestions = map[profile.Flag]string{
	profile.FlagHealthInsurance: "Do you have health insurance?",
	profile.FlagLifeInsurance:   "Do you have life insurance?",
	profile.FlagOwnsHouse:       "Do you own a house?",
	profile.FlagHealthIssues:    "Any major health issues?",
}

// protectionRow is a flag question, or the rent field when flag is empty.
type protectionRow struct {
	flag profile.Flag
}

func (r protectionRow) isRent() bool { return r.flag == "" }

// protectionRows lists the questions in order, with the rent field after
// the house question for tenants.
func protectionRows(p profile.Profile) []protectionRow {
	var rows []protectionRow
	for _, f := range profile.Flags {
		rows = append(rows, protectionRow{flag: f})
		if f == profile.FlagOwnsHouse && p.OwnsHouse == profile.No {
			rows = append(rows, protectionRow{})
		}
	}
	return rows
}

func (a App) updateProtectionKey(key string) (tea.Model, tea.Cmd) {
	p := a.store.Profile()
	rows := protectionRows(p)
	cur := clamp(a.rows[tabProtection], 0, len(rows)-1)
	row := rows[cur]

	switch key {
	case "j", "down":
		return a.moveRow(1), nil
	case "k", "up":
		return a.moveRow(-1), nil
	case "y", "n", "u":
		if row.isRent() {
			return a, nil
		}
		v := map[string]profile.TriState{"y": profile.Yes, "n": profile.No, "u": profile.Unknown}[key]
		a.store.SetFlag(row.flag, v)
		a.rows[tabProtection] = clamp(cur, 0, len(protectionRows(a.store.Profile()))-1)
		a.setStatus("Draft saved", false)
		return a, nil
	case "enter":
		if !row.isRent() {
			return a, nil
		}
		a.editing = true
		a.edit = editTarget{rent: true}
		a.input = newFieldInput("Monthly Rent (₹)", p.MonthlyRent)
		return a, textinput.Blink
	}
	return a, nil
}

func (a App) renderProtectionTab(cw int) string {
	t := theme.Active
	p := a.store.Profile()
	rows := protectionRows(p)
	cur := clamp(a.rows[tabProtection], 0, len(rows)-1)

	questionStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	yesStyle := lipgloss.NewStyle().Foreground(t.Gain).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(t.Caution).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for i, row := range rows {
		marker := "  "
		qs := questionStyle
		if i == cur {
			marker = selectedStyle.Render("▸ ")
			qs = selectedStyle
		}

		if row.isRent() {
			b.WriteString(marker + "    " + qs.Render(padRight("Monthly rent (₹)", 32)))
			switch {
			case a.editing && a.edit.rent:
				b.WriteString(a.input.View())
			case p.MonthlyRent == "":
				b.WriteString(dimStyle.Render("· press enter"))
			default:
				b.WriteString(questionStyle.Render(p.MonthlyRent))
			}
			b.WriteString("\n")
			continue
		}

		v := p.Flag(row.flag)
		answer := dimStyle.Render(cli.FormatTriState(v))
		switch v {
		case profile.Yes:
			answer = yesStyle.Render("Yes")
		case profile.No:
			answer = noStyle.Render("No")
		}
		b.WriteString(marker + qs.Render(padRight(flagQuestions[row.flag], 36)) + answer + "\n")
	}

	body := strings.TrimRight(b.String(), "\n")
	if a.editing {
		return components.FocusedCard("Insurance, Housing & Health", body, cw)
	}
	return components.ContentCard("Insurance, Housing & Health", body, cw)
}
