// Package components provides reusable TUI widgets for the planner.
package components

import (
	"strings"

	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Metric is one figure shown in a MetricCard.
type Metric struct {
	Label string
	Value string
	Note  string
}

func cardStyle(outerWidth int, border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// MetricCard renders a labelled figure in a small card. outerWidth includes
// the border.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	lines := []string{
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label),
		lipgloss.NewStyle().Foreground(t.Gain).Bold(true).Render(m.Value),
	}
	if m.Note != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Note))
	}
	return cardStyle(outerWidth, t.Border).Render(strings.Join(lines, "\n"))
}

// MetricCardRow renders metric cards side by side, filling totalWidth exactly.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// ContentCard renders body in a bordered card under an optional title.
func ContentCard(title, body string, outerWidth int) string {
	return contentCard(title, body, outerWidth, theme.Active.Border)
}

// FocusedCard is a ContentCard drawn with the focus border, used while one
// of its fields is being edited.
func FocusedCard(title, body string, outerWidth int) string {
	return contentCard(title, body, outerWidth, theme.Active.Focus)
}

func contentCard(title, body string, outerWidth int, border lipgloss.Color) string {
	if title != "" {
		heading := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Bold(true).Render(title)
		body = heading + "\n" + body
	}
	return cardStyle(outerWidth, border).Render(body)
}

// CardInnerWidth returns the text width left inside a card of outerWidth.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
