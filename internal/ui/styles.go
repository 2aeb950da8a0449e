package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorGreen  = lipgloss.Color("#22c55e")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorYellow = lipgloss.Color("#eab308")
	ColorBlue   = lipgloss.Color("#3b82f6")
	ColorDim    = lipgloss.Color("#6b7280")
	ColorWhite  = lipgloss.Color("#f9fafb")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorGreen)

	FailedStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	ActiveStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)
)

const (
	CheckMark = "[OK]"
	CrossMark = "[!!]"
	Spinner   = "[..]"
	Pending   = "[  ]"
	WarnMark  = "[??]"
)
