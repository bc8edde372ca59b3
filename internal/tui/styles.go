package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7FB4CA")).
			Background(lipgloss.Color("#2A2A37")).
			Padding(0, 2)

	styleName     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7FB4CA"))
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#16161D")).Background(lipgloss.Color("#7FB4CA"))
	styleLink     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A3D4D5")).Underline(true)
	styleToggle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#938AA9"))
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#727169"))

	styleReadme = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2D4F67")).
			Padding(0, 1)
)
