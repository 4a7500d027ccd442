package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Faint: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Info: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		PanelFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),
		Chip: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
	}
}

// Styles contains the pre-built lipgloss styles for a theme.
type Styles struct {
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Faint   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style

	Title      lipgloss.Style
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Selected   lipgloss.Style
	Panel      lipgloss.Style
	PanelFocus lipgloss.Style
	Chip       lipgloss.Style
}

// Themes returns the built-in themes in cycle order.
func Themes() []Theme {
	return []Theme{draculaTheme(), nordTheme()}
}

// ThemeByName returns the named theme, defaulting to the first one.
func ThemeByName(name string) Theme {
	for _, t := range Themes() {
		if t.Name == name {
			return t
		}
	}
	return Themes()[0]
}

func draculaTheme() Theme {
	return Theme{
		Name:          "Dracula",
		Background:    "#282A36",
		Surface:       "#343746",
		SelectionBg:   "#44475A",
		SelectionText: "#F8F8F2",
		Border:        "#44475A",
		BorderFocus:   "#BD93F9",
		Text:          "#F8F8F2",
		Muted:         "#A8ABB8",
		Faint:         "#6272A4",
		Accent:        "#BD93F9",
		Success:       "#50FA7B",
		Warning:       "#F1FA8C",
		Danger:        "#FF5555",
		Info:          "#8BE9FD",
	}
}

func nordTheme() Theme {
	return Theme{
		Name:          "Nord",
		Background:    "#2E3440",
		Surface:       "#3B4252",
		SelectionBg:   "#434C5E",
		SelectionText: "#ECEFF4",
		Border:        "#4C566A",
		BorderFocus:   "#88C0D0",
		Text:          "#ECEFF4",
		Muted:         "#D8DEE9",
		Faint:         "#616E88",
		Accent:        "#88C0D0",
		Success:       "#A3BE8C",
		Warning:       "#EBCB8B",
		Danger:        "#BF616A",
		Info:          "#81A1C1",
	}
}
