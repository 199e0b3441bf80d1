package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jheinsohn/plantafel/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// MonthLabel renders an absolute month column as "Jan 2025".
func MonthLabel(monthIdx int) string {
	return domain.MonthStart(monthIdx).Format("Jan 2006")
}

// Money renders a currency figure with two decimals, or a dimmed dash for zero.
func Money(v float64) string {
	if v == 0 {
		return Dim("--")
	}
	return fmt.Sprintf("%.2f", v)
}

// Days renders a person-day figure with one decimal, or a dimmed dash for zero.
func Days(v float64) string {
	if v == 0 {
		return Dim("--")
	}
	return fmt.Sprintf("%.1f", v)
}

// Date renders a date as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// VersionStamp renders a plan version timestamp in second precision.
func VersionStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
