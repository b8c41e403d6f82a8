package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"github.com/theirongolddev/finplan/internal/tui/theme"
)

// adviceStyle is glamour's dark style recolored with the active theme and
// without the document margin, since the advice already sits in a card.
func adviceStyle(t theme.Theme) ansi.StyleConfig {
	color := func(c string) *string { return &c }
	zero := uint(0)

	s := styles.DarkStyleConfig
	s.Document.Color = color(string(t.TextPrimary))
	s.Document.Margin = &zero
	s.Heading.Color = color(string(t.Accent))
	s.H1.Color = color(string(t.Background))
	s.H1.BackgroundColor = color(string(t.Accent))
	s.Strong.Color = color(string(t.AccentBright))
	s.Link.Color = color(string(t.Quote))
	s.BlockQuote.Color = color(string(t.Quote))
	s.Code.Color = color(string(t.Quote))
	s.HorizontalRule.Color = color(string(t.Border))
	s.Table.Color = color(string(t.TextMuted))
	return s
}

// renderMarkdown renders advice text for the viewport. If glamour fails the
// raw text is shown unchanged.
func renderMarkdown(src string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(adviceStyle(theme.Active)),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
