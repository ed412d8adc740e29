package pager

import "github.com/charmbracelet/lipgloss"

// Style controls the pager's rendering.
type Style struct {
	Gutter   lipgloss.Style
	LineNum  lipgloss.Style
	WrapMark lipgloss.Style

	Text     lipgloss.Style
	Focus    lipgloss.Style
	Sentinel lipgloss.Style
	Status   lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:   gutter,
		LineNum:  gutter,
		WrapMark: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Text:     lipgloss.NewStyle(),
		Focus:    lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Sentinel: gutter,
		Status:   lipgloss.NewStyle().Reverse(true),
	}
}
