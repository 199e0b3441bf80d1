package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jheinsohn/plantafel/internal/engine"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityColor returns the lipgloss style for a validation severity.
func SeverityColor(sev engine.Severity) lipgloss.Style {
	switch sev {
	case engine.SeverityViolation:
		return StyleRed
	case engine.SeveritySevere:
		return StyleRed
	case engine.SeverityCorrected:
		return StyleYellow
	case engine.SeverityInfo:
		return StyleBlue
	default:
		return StyleDim
	}
}

// SeverityIndicator returns a colored severity label such as "● VIOLATION".
func SeverityIndicator(sev engine.Severity) string {
	switch sev {
	case engine.SeverityViolation:
		return StyleRed.Render("● VIOLATION")
	case engine.SeveritySevere:
		return StyleRed.Render("▲ SEVERE")
	case engine.SeverityCorrected:
		return StyleYellow.Render("● CORRECTED")
	case engine.SeverityInfo:
		return StyleBlue.Render("○ INFO")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Verdict returns a colored pass/fail line for a validation outcome.
func Verdict(valid, healed bool) string {
	switch {
	case valid && healed:
		return StyleYellow.Render("✔ VALID (after corrections)")
	case valid:
		return StyleGreen.Render("✔ VALID")
	default:
		return StyleRed.Render("✘ INVALID")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
