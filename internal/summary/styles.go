package summary

import "github.com/charmbracelet/lipgloss"

// DefaultPadding is the horizontal padding inside the summary box.
const DefaultPadding = 2

// unexported constants.
const (
	accentColorCode    = "62"  // Blue
	dimColorCode       = "240" // Dark gray
	errorColorCode     = "196" // Red
	highlightColorCode = "86"  // Cyan
	successColorCode   = "42"  // Green
	warningColorCode   = "226" // Yellow
)

// BoxStyle returns the style for the summary box.
func BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accentColorCode)).
		Padding(0, DefaultPadding)
}

// DimStyle returns the style for secondary text.
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColorCode))
}

// ErrorStyle returns the style for aborted runs.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(errorColorCode)).
		Bold(true)
}

// LabelStyle returns the style for field labels.
func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(highlightColorCode)).
		Bold(true)
}

// SuccessStyle returns the style for complete runs.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(successColorCode)).
		Bold(true)
}

// WarningStyle returns the style for partial runs.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(warningColorCode)).
		Bold(true)
}
