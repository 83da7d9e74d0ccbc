package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// DropdownWidth is the fixed width of the choice list column.
const DropdownWidth = 34

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorPeach    = lipgloss.Color(flavor.Peach().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Toggle styles.
var (
	// ToggleStyle is the closed dropdown button showing the active slug.
	ToggleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 1)

	// ToggleOpenStyle is the toggle while the dropdown is open.
	ToggleOpenStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	// TitleStyle is used for the app title in the header row.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)
)

// Dropdown styles.
var (
	// HeaderStyle is used for menu group labels.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// ActiveChoiceStyle marks the choice matching the active selection.
	ActiveChoiceStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	// CursorStyle is used for the highlighted row.
	CursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	// ActionStyle is used for the "+ New" row.
	ActionStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	// HomeMarkerStyle colors the home marker.
	HomeMarkerStyle = lipgloss.NewStyle().
			Foreground(colorPeach)

	// CustomizedMarkerStyle colors the customized dot.
	CustomizedMarkerStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	// DimStyle is used for placeholders and inactive text.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// DropdownStyle wraps the open choice list.
	DropdownStyle = lipgloss.NewStyle().
			Width(DropdownWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)
)

// Preview styles.
var (
	// PreviewStyle wraps the template and theme previews.
	PreviewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMauve).
			Padding(0, 1)

	// PreviewTitleStyle is used for the preview heading.
	PreviewTitleStyle = lipgloss.NewStyle().
				Foreground(colorMauve).
				Bold(true)

	// PreviewLabelStyle is used for field names in previews.
	PreviewLabelStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusErrorStyle is used for load errors in the status bar.
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorSurface0)
)

// Overlay styles.
var (
	// OverlayStyle is the border and background for modal overlays.
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Foreground(colorText).
			Padding(1, 2)

	// OverlayTitleStyle is used for the title text in overlays.
	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	// OverlayChoiceCursorStyle is used for the cursor in choice overlays.
	OverlayChoiceCursorStyle = lipgloss.NewStyle().
					Foreground(colorBlue).
					Bold(true)

	// OverlayScrollHintStyle is used for scroll indicators in overlays.
	OverlayScrollHintStyle = lipgloss.NewStyle().
				Foreground(colorOverlay0)
)

// SpinnerStyle colors the loading spinner.
var SpinnerStyle = lipgloss.NewStyle().Foreground(colorBlue)
