package editor

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor    = lipgloss.Color("99")  // Purple
	accentColor     = lipgloss.Color("212") // Pink
	mutedColor      = lipgloss.Color("245") // Gray
	errorColor      = lipgloss.Color("196") // Red
	successColor    = lipgloss.Color("42")  // Green
	backgroundColor = lipgloss.Color("235") // Dark gray

	// Title style
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingLeft(2).
			PaddingRight(2)

	// Canvas frame style
	canvasStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(mutedColor)

	// Element fill styles per variant
	textElementStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	imageElementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	shapeElementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("144"))
	dataElementStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))

	selectedElementStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	hoveredElementStyle = lipgloss.NewStyle().
				Foreground(primaryColor)

	gridDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	// Status bar style
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(1)

	statusDirtyStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)

	statusSavedStyle = lipgloss.NewStyle().
				Foreground(successColor)

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor)

	// Error banner style
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("52")).
				Bold(true).
				Padding(0, 2)

	// Palette styles
	paletteItemStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	paletteSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(accentColor).
				Bold(true)

	paletteBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3).
			Background(backgroundColor)

	// Help overlay styles
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Confirm dialog styles
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2).
			Align(lipgloss.Center)
)

// variantStyle returns the fill style for an element variant.
func variantStyle(variant string) lipgloss.Style {
	switch variant {
	case "image":
		return imageElementStyle
	case "shape":
		return shapeElementStyle
	case "data":
		return dataElementStyle
	default:
		return textElementStyle
	}
}
