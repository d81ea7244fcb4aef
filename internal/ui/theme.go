package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette for the timer display.
type Theme struct {
	Name   string
	Accent lipgloss.TerminalColor
	Text   lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
	Warn   lipgloss.TerminalColor
	GradA  string
	GradB  string
}

var themes = []Theme{
	{
		Name:   "charm",
		Accent: lipgloss.Color("#7D56F4"),
		Text:   lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#FFFDF5"},
		Dim:    lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"},
		Warn:   lipgloss.Color("#F25D94"),
		GradA:  "#7D56F4",
		GradB:  "#F25D94",
	},
	{
		Name:   "matrix",
		Accent: lipgloss.Color("#04B575"),
		Text:   lipgloss.AdaptiveColor{Light: "#0A3622", Dark: "#D7FFE9"},
		Dim:    lipgloss.AdaptiveColor{Light: "#7A8A7F", Dark: "#3C5C4A"},
		Warn:   lipgloss.Color("#ECFD65"),
		GradA:  "#04B575",
		GradB:  "#ECFD65",
	},
	{
		Name:   "ember",
		Accent: lipgloss.Color("#FF8700"),
		Text:   lipgloss.AdaptiveColor{Light: "#33201A", Dark: "#FFF1E0"},
		Dim:    lipgloss.AdaptiveColor{Light: "#A58F85", Dark: "#6E5448"},
		Warn:   lipgloss.Color("#FF005F"),
		GradA:  "#FF8700",
		GradB:  "#FF005F",
	},
}

// Themes returns every available theme, default first.
func Themes() []Theme {
	return themes
}

// ThemeByName returns the named theme, falling back to the default when the
// name is unknown.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

type styles struct {
	clock   lipgloss.Style
	flash   lipgloss.Style
	mode    lipgloss.Style
	state   lipgloss.Style
	dim     lipgloss.Style
	errText lipgloss.Style
	overlay lipgloss.Style
}

func newStyles(t Theme) styles {
	clock := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Foreground(t.Text).
		Bold(true).
		Padding(1, 6)

	return styles{
		clock: clock,
		flash: clock.
			Foreground(t.Accent).
			BorderForeground(t.Warn),
		mode:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		state:   lipgloss.NewStyle().Foreground(t.Text),
		dim:     lipgloss.NewStyle().Foreground(t.Dim),
		errText: lipgloss.NewStyle().Foreground(t.Warn),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 2),
	}
}
