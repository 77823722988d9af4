package main

import "github.com/charmbracelet/lipgloss"

var (
	colorText     = lipgloss.Color("#e6edf3")
	colorDim      = lipgloss.Color("#8b949e")
	colorAccent   = lipgloss.Color("#58a6ff")
	colorSelected = lipgloss.Color("#1f6feb")
	colorError    = lipgloss.Color("#f85149")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorSelected)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errStyle = lipgloss.NewStyle().
			Foreground(colorError)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
