package puzzle

import (
	"strings"
)

/*

Pretty-printed grids in strings, the way the game shows them.

*/

// Render returns the grid as a human-readable block of text: one
// line per row, a space after every box-size-th column, and a
// blank line after every box-size-th row.  Both separators fire on
// the final column and row as well, so every line carries a
// trailing space and the block ends with a blank line.  Purely
// presentational; nothing is validated.
func (g *Grid) Render() string {
	var sb strings.Builder
	side := g.size * g.size
	for row := 1; row <= side; row++ {
		for col := 1; col <= side; col++ {
			sb.WriteByte(byte(g.cells[g.cellIndex(col, row)]))
			if col%g.size == 0 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
		if row%g.size == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// String makes grids print nicely in logs and test failures.
func (g *Grid) String() string {
	if g == nil {
		return "<nil grid>"
	}
	return g.Render()
}
