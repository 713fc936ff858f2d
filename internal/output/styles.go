package output

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFCF0"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3AA99F"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6F6E69"))

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#879A39"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DA702C"))
)
