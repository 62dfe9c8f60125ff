package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorFocus   lipgloss.Color = "#b4befe"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	nameStyle     = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(colorSubtext)
	dateStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	lineStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtext).Padding(0, 1)
	selectedStyle = lineStyle.BorderForeground(colorFocus)
	paymentStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorSubtext).Padding(0, 1)
)
