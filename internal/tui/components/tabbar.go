package components

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/finplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines the form sections followed by the advice view.
var Tabs = []Tab{
	{Name: "Income", Key: '1'},
	{Name: "Expenses", Key: '2'},
	{Name: "Loans", Key: '3'},
	{Name: "Goals", Key: '4'},
	{Name: "Investments", Key: '5'},
	{Name: "SIPs", Key: '6'},
	{Name: "Protection", Key: '7'},
	{Name: "Health", Key: '8'},
	{Name: "Advice", Key: '9'},
}

// TabVisualWidth returns the rendered width of tab, including padding and
// the shortcut hint shown on inactive tabs.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2
	if !active {
		w += 3
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, 1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	sepStyle := lipgloss.NewStyle().Background(t.Surface)

	var parts []string
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, inactiveStyle.Render(tab.Name)+keyStyle.Render("["+string(tab.Key)+"]"))
	}

	row := strings.Join(parts, sepStyle.Render(" "))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key string) int {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(Tabs) {
		return -1
	}
	return n - 1
}
