package authform

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	focused lipgloss.Style
	blurred lipgloss.Style
	warning lipgloss.Style
	help    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		focused: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		blurred: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:    lipgloss.NewStyle().Faint(true),
	}
}
