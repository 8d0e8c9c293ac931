package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	DisableColors()
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"a", "short"},
			{"long-id", "x"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two rows

	// Every NAME cell starts at the same column.
	col := strings.Index(lines[0], "NAME")
	assert.Equal(t, col, strings.Index(lines[2], "short"))
	assert.Equal(t, col, strings.Index(lines[3], "x"))
}

func TestRenderTablePadsShortRows(t *testing.T) {
	DisableColors()
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
