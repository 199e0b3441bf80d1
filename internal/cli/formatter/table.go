package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alignment selects how a cell is padded within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable renders a left-aligned table with a header separator line.
func RenderTable(headers []string, rows [][]string) string {
	aligns := make([]Alignment, len(headers))
	return RenderAlignedTable(headers, rows, aligns)
}

// RenderNumericTable renders a table whose first column is left-aligned and
// all remaining columns right-aligned, suited to monthly number series.
func RenderNumericTable(headers []string, rows [][]string) string {
	aligns := make([]Alignment, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = AlignRight
	}
	return RenderAlignedTable(headers, rows, aligns)
}

// RenderAlignedTable renders an aligned table with per-column alignment and a
// header separator line. Headers are rendered with the Header style. Columns
// are padded to the maximum visible width found across headers and rows,
// measured with lipgloss so ANSI escape sequences do not count.
func RenderAlignedTable(headers []string, rows [][]string, aligns []Alignment) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	alignFor := func(i int) Alignment {
		if i < len(aligns) {
			return aligns[i]
		}
		return AlignLeft
	}

	const colGap = 2

	var b strings.Builder

	writeCell := func(raw, rendered string, col int, last bool) {
		pad := widths[col] - lipgloss.Width(raw)
		if pad < 0 {
			pad = 0
		}
		if alignFor(col) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(rendered)
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			return
		}
		b.WriteString(rendered)
		if !last {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}

	for i, h := range headers {
		writeCell(h, StyleHeader.Render(h), i, i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(cell, cell, i, i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}
