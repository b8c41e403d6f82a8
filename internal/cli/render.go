package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles follow the default TUI theme so CLI output matches the planner.
var (
	palette = theme.FlexokiDark

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(palette.TextPrimary).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(palette.Accent)

	valueStyle  = lipgloss.NewStyle().Foreground(palette.TextPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(palette.TextMuted)
	moneyStyle  = lipgloss.NewStyle().Foreground(palette.Gain)
	footerStyle = lipgloss.NewStyle().Bold(true).Foreground(palette.Gain)
	dimStyle    = lipgloss.NewStyle().Foreground(palette.TextDim)
)

// Table is a bordered text table. Footer, when set, is drawn below a
// separator and usually holds totals.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders t with the first column left-aligned and the rest
// right-aligned.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	var b strings.Builder
	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < cols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}
	line := func(row []string, style lipgloss.Style, alignAmounts bool) {
		bar := dimStyle.Render("│")
		b.WriteString(bar)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], alignAmounts && i > 0) + " "))
			b.WriteString(bar)
		}
		b.WriteString("\n")
	}

	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle, false)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		line(row, valueStyle, true)
	}
	if len(t.Footer) > 0 {
		rule("├", "┼", "┤")
		line(t.Footer, footerStyle, true)
	}
	rule("╰", "┴", "╯")

	return b.String()
}

// pad fills s to width display cells. Rupee amounts are multi-byte, so
// width is measured in cells rather than bytes.
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderKV renders aligned label/value lines.
func RenderKV(pairs [][2]string) string {
	labelWidth := 0
	for _, p := range pairs {
		labelWidth = max(labelWidth, lipgloss.Width(p[0]))
	}

	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(pad(p[0], labelWidth, false)), valueStyle.Render(p[1]))
	}
	return b.String()
}

// RenderMoney styles a formatted amount.
func RenderMoney(s string) string {
	return moneyStyle.Render(s)
}
