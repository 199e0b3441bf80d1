package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderTable_PadsColumnsToWidestCell(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{
		{"short", "x"},
		{"a much longer cell", "y"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "short")
	assert.Contains(t, lines[3], "a much longer cell")
}

func TestRenderNumericTable_RightAlignsValueColumns(t *testing.T) {
	out := RenderNumericTable([]string{"MONTH", "VALUE"}, [][]string{
		{"Jan 2025", "1.00"},
		{"Feb 2025", "100.00"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	// Both value cells end at the same column.
	assert.True(t, strings.HasSuffix(lines[2], "  1.00"))
	assert.True(t, strings.HasSuffix(lines[3], "100.00"))
}

func TestRenderTable_MissingCellsRenderEmpty(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})

	assert.Contains(t, out, "only")
}
