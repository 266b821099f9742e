package ui

import "github.com/charmbracelet/lipgloss"

// Medalytics palette. High-contrast shades picked for dark terminal
// backgrounds.
const (
	ColorWhite = "#FFFFFF"

	ColorGray400 = "#9FA7B2"
	ColorGray500 = "#6C7585"
	ColorGray600 = "#4E5560"
	ColorGray800 = "#212732"

	ColorTeal300 = "#A3E1D5"
	ColorTeal400 = "#80D0C3"
	ColorTeal500 = "#51B9A9"
	ColorTeal600 = "#2F9589"

	ColorBlue300 = "#97C1FF"
	ColorBlue400 = "#639CFF"
	ColorBlue500 = "#2E7BFF"

	ColorGreen400 = "#63D78E"

	ColorRed400 = "#F87171"

	ColorYellow400 = "#F9C424"
)

var (
	// TitleStyle - main headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorTeal400))

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorGreen400))

	// ErrorStyle - error messages, including the chart fetch failure
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorRed400))

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorYellow400))

	// BoxStyle - bordered panels (dashboard metrics, completion screen)
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorTeal500)).
			Padding(0, 1)

	// DimStyle - secondary text such as help lines and the profile footer
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray500))

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// AccentStyle - focused fields and the selected role
	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorBlue400))

	URLStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color(ColorTeal300))

	// ActiveTabStyle and InactiveTabStyle draw the dashboard tab bar.
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorTeal600))

	InactiveTabStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.Color(ColorGray400)).
				Background(lipgloss.Color(ColorGray800))

	// BarColor fills the chart bars.
	BarColor = ColorBlue500
)
