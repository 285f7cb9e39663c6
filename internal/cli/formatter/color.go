package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired chrome palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle colors text with the compliance palette color of s.
func StatusStyle(s compliance.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(compliance.Color(s)))
}

// StatusBadge renders "● <label>" in the status color.
func StatusBadge(r compliance.Result) string {
	return StatusStyle(r.Status).Render("● " + r.Label)
}

// Deviation renders the signed deviation in the status color.
func Deviation(r compliance.Result) string {
	return StatusStyle(r.Status).Render(compliance.FormatDeviation(r.Deviation))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Star marks favorites.
func Star(on bool) string {
	if on {
		return StyleYellow.Render("★")
	}
	return " "
}
