package puzzle

/*

Constraint checking

*/

// IsViolating reports whether writing the given symbol at (col,
// row) would duplicate a symbol already present in the target
// cell's row, column, or containing box.  Fails with an
// invalid-character Error if the symbol is not a member of the
// grid's alphabet, and with an out-of-range Error if the
// coordinates are out of bounds.
//
// Note that this does not check whether the target cell is already
// occupied; that is the caller's concern.
func (g *Grid) IsViolating(sym Symbol, col, row int) (bool, error) {
	if !g.alphabet.Contains(sym) {
		return false, symbolError(sym, g.alphabet)
	}
	side := g.size * g.size
	if err := g.checkCoord(ColumnAttribute, col, side); err != nil {
		return false, err
	}
	if err := g.checkCoord(RowAttribute, row, side); err != nil {
		return false, err
	}
	return g.conflicts(sym, col, row), nil
}

// conflicts is the plain boolean predicate behind IsViolating.
// The generator calls it directly in its inner loop, where every
// candidate symbol comes from the grid's own alphabet and every
// coordinate from the visiting cursor, so validation would be
// wasted work and error plumbing would just obscure the algorithm.
func (g *Grid) conflicts(sym Symbol, col, row int) bool {
	side := g.size * g.size
	// the row
	base := g.cellIndex(1, row)
	for i := 0; i < side; i++ {
		if g.cells[base+i] == sym {
			return true
		}
	}
	// the column
	for r := 1; r <= side; r++ {
		if g.cells[g.cellIndex(col, r)] == sym {
			return true
		}
	}
	// the containing box
	baseCol, baseRow := ((col-1)/g.size)*g.size, ((row-1)/g.size)*g.size
	for ir := 1; ir <= g.size; ir++ {
		for ic := 1; ic <= g.size; ic++ {
			if g.cells[g.cellIndex(baseCol+ic, baseRow+ir)] == sym {
				return true
			}
		}
	}
	return false
}
