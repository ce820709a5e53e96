package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles used by the terminal host around the
// menu overlays.
type Styles struct {
	Desktop *lipgloss.Style
	Hint    *lipgloss.Style
	Status  *lipgloss.Style
	Error   *lipgloss.Style
}

// NewStyles derives host styles from a resolved theme so the surrounding
// chrome follows the menu's light/dark choice.
func NewStyles(t Theme) *Styles {
	return &Styles{
		Desktop: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Disabled.Hex())),
		),
		Hint: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Accelerator.Hex())).Italic(true),
		),
		Status: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Text.Hex())).Bold(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
	}
}

// CellStyle is the style for a single composited terminal cell.
func CellStyle(fg, bg Color, bold bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	if bold {
		style = style.Bold(true)
	}
	return style
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
