package components

import (
	"strings"

	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest status message on the right. isErr colors the message red.
func RenderStatusBar(width int, hints, status string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	statusStyle := lipgloss.NewStyle().
		Foreground(t.Gain).
		Background(t.Surface)
	if isErr {
		statusStyle = statusStyle.Foreground(t.Loss)
	}

	left := " " + hints
	right := ""
	if status != "" {
		right = statusStyle.Render(status) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
