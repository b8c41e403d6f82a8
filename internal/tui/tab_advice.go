package tui

import (
	"github.com/theirongolddev/finplan/internal/report"
	"github.com/theirongolddev/finplan/internal/tui/components"
	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAdviceTab(cw int) string {
	t := theme.Active

	if a.advice == "" {
		msg := lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			"No advice yet. Fill in the form, then press ctrl+s to submit it.")
		return components.ContentCard(report.Title, msg, cw)
	}

	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Render(report.Subtitle)
	note := lipgloss.NewStyle().Foreground(t.Note).Italic(true).Render("Note: " + report.Note)
	body := lipgloss.JoinVertical(lipgloss.Left, sub, note, "", a.viewport.View())
	return components.ContentCard(report.Title, body, cw)
}
