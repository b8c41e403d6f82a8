// Package theme defines color themes for the planner TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the planner's color roles to concrete colors.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards, tab bar, status bar
	SurfaceHover lipgloss.Color // selected row, active tab
	Border       lipgloss.Color
	Focus        lipgloss.Color // border of the card being edited

	TextDim     lipgloss.Color // hints, empty cells
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Gain    lipgloss.Color // amounts, projected values, "Yes" answers
	Loss    lipgloss.Color // errors
	Caution lipgloss.Color // "No" answers
	Note    lipgloss.Color // advice disclaimer
	Quote   lipgloss.Color // quoted and code text in advice
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	Focus:        "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Gain:         "#879A39",
	Loss:         "#D14D41",
	Caution:      "#DA702C",
	Note:         "#D0A215",
	Quote:        "#24837B",
}

// CatppuccinMocha is a pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	Focus:        "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Gain:         "#A6E3A1",
	Loss:         "#F38BA8",
	Caution:      "#FAB387",
	Note:         "#F9E2AF",
	Quote:        "#94E2D5",
}

// TokyoNight is a cool blue theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	SurfaceHover: "#343A52",
	Border:       "#565F89",
	Focus:        "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Gain:         "#9ECE6A",
	Loss:         "#F7768E",
	Caution:      "#FF9E64",
	Note:         "#E0AF68",
	Quote:        "#7DCFFF",
}

// Terminal uses the 16 ANSI colors so it follows the terminal's own palette.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	Focus:        "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Gain:         "2",
	Loss:         "1",
	Caution:      "3",
	Note:         "3",
	Quote:        "6",
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
