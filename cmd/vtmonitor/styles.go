package main

import "github.com/charmbracelet/lipgloss"

// styleSet mirrors status/styles.go's shape: a struct of named lipgloss
// styles built once at package init, rather than constructed inline in
// View on every render.
type styleSet struct {
	panel lipgloss.Style
	title lipgloss.Style
	key   lipgloss.Style
	value lipgloss.Style
	help  lipgloss.Style
}

var styles = styleSet{
	panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		MarginRight(1),
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),
	key: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
	value: lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")),
	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true),
}
