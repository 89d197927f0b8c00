package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors based on terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorError     lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color
)

func initializeColors() {
	if lipgloss.HasDarkBackground() {
		ColorPrimary = lipgloss.Color("205") // bright magenta
		ColorSecondary = lipgloss.Color("33")
		ColorSuccess = lipgloss.Color("42")
		ColorError = lipgloss.Color("196")
		ColorText = lipgloss.Color("252")
		ColorTextMuted = lipgloss.Color("243")
		ColorBorder = lipgloss.Color("238")
	} else {
		ColorPrimary = lipgloss.Color("161")
		ColorSecondary = lipgloss.Color("26")
		ColorSuccess = lipgloss.Color("28")
		ColorError = lipgloss.Color("124")
		ColorText = lipgloss.Color("235")
		ColorTextMuted = lipgloss.Color("245")
		ColorBorder = lipgloss.Color("250")
	}
}

var (
	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	focusedStyle lipgloss.Style
	mutedStyle   lipgloss.Style
	statusStyle  lipgloss.Style
	errorStyle   lipgloss.Style
	helpStyle    lipgloss.Style
	paneStyle    lipgloss.Style
	badgeStyle   lipgloss.Style
)

func initializeStyles() {
	initializeColors()

	titleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	focusedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	mutedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	statusStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	errorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	helpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(1, 1, 0, 1)

	paneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
}
