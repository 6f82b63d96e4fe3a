package render

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	urlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)
	committedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	cardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	badgeStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

func badgeStyle(variant string) lipgloss.Style {
	if s, ok := badgeStyles[variant]; ok {
		return s
	}
	return badgeStyles["info"]
}
