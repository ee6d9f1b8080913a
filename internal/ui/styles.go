package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DMStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	PlayerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	ReadyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
