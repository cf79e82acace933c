package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the terminal UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color

	// Log line levels.
	LogInfo    lipgloss.Color
	LogSuccess lipgloss.Color
	LogError   lipgloss.Color
	LogCommand lipgloss.Color
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("114"),
	BorderColor:        lipgloss.Color("238"),
	LogInfo:            lipgloss.Color("250"),
	LogSuccess:         lipgloss.Color("78"),
	LogError:           lipgloss.Color("203"),
	LogCommand:         lipgloss.Color("180"),
}

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
	pane     lipgloss.Style
	levels   map[logLevel]lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		label:    lipgloss.NewStyle().Foreground(theme.NormalText).Width(22),
		value:    lipgloss.NewStyle().Foreground(theme.NormalText),
		selected: lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		pane:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.BorderColor),
		levels: map[logLevel]lipgloss.Style{
			levelInfo:    lipgloss.NewStyle().Foreground(theme.LogInfo),
			levelSuccess: lipgloss.NewStyle().Foreground(theme.LogSuccess),
			levelError:   lipgloss.NewStyle().Foreground(theme.LogError),
			levelCommand: lipgloss.NewStyle().Foreground(theme.LogCommand),
		},
	}
}
