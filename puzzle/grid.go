// Package puzzle provides a model for generated sudoku grids and
// operations on them.
//
// In this package, a grid of box size N is an N-squared by
// N-squared matrix of cells, partitioned into N by N boxes of N by
// N cells each.  Each cell holds either one symbol from the grid's
// alphabet or the Empty marker.  A fully generated grid contains
// each alphabet symbol exactly once in every row, column, and box;
// a partial grid (mid-generation, or a playable puzzle produced by
// Poke) may hold Empty cells but never duplicates a symbol within
// a row, column, or box.
//
// External coordinates are 1-based: columns and rows range from 1
// to N-squared, box coordinates from 1 to N.  Internally the cells
// live in one flat row-major array, and the addressing arithmetic
// maps (col, row) through the (boxRow, boxCol, innerRow, innerCol)
// decomposition that defines the box layout.
package puzzle

/*

Grids

*/

// A Grid holds the cells of one sudoku board, solved or partial.
// Grids own their cell storage exclusively: no two Grids ever
// share cells, and every constructor and Copy produces independent
// storage.
type Grid struct {
	size     int      // box size; side length is size*size
	alphabet Alphabet // the size*size usable symbols
	cells    []Symbol // flat row-major array of size^4 cells
}

// newEmptyGrid makes an all-Empty grid of the given box size.  The
// size must already be validated.
func newEmptyGrid(size int) *Grid {
	alphabet, err := alphabetForSize(size)
	if err != nil {
		panic(err) // callers validate size first
	}
	side := size * size
	cells := make([]Symbol, side*side)
	for i := range cells {
		cells[i] = Empty
	}
	return &Grid{size: size, alphabet: alphabet, cells: cells}
}

// FromCells constructs a grid holding copies of the given cell
// contents, in row-major order.  The box size is derived from the
// cell count, which must be the fourth power of a box size in
// bounds; every cell must be Empty or an alphabet member.  The
// input slice is not retained.
func FromCells(cells []Symbol) (*Grid, error) {
	side, ok := findIntRoot(len(cells))
	if !ok {
		return nil, Error{
			Kind:      InvalidSizeKind,
			Attribute: CellsAttribute,
			Values:    ErrorData{len(cells)},
			Message:   "Invalid size: cell count is not the square of a side length",
		}
	}
	size, ok := findIntRoot(side)
	if !ok {
		return nil, Error{
			Kind:      InvalidSizeKind,
			Attribute: CellsAttribute,
			Values:    ErrorData{len(cells)},
			Message:   "Invalid size: side length is not the square of a box size",
		}
	}
	alphabet, err := alphabetForSize(size)
	if err != nil {
		return nil, err
	}
	for _, sym := range cells {
		if sym != Empty && !alphabet.Contains(sym) {
			return nil, symbolError(sym, alphabet)
		}
	}
	g := &Grid{size: size, alphabet: alphabet, cells: make([]Symbol, len(cells))}
	copy(g.cells, cells)
	return g, nil
}

// findIntRoot finds the integer square root of val, if it exists.
func findIntRoot(val int) (int, bool) {
	var i int
	for i = 1; i*i <= val; i++ {
		if i*i == val {
			return i, true
		}
	}
	return i - 1, false
}

/*

Addressing

*/

// cellIndex maps 1-based (col, row) coordinates to the flat cell
// index.  Row-major order makes this equivalent to addressing the
// cell as [boxRow][boxCol][innerRow][innerCol] with boxRow =
// (row-1)/size, boxCol = (col-1)/size, innerRow = (row-1)%size,
// innerCol = (col-1)%size.
func (g *Grid) cellIndex(col, row int) int {
	side := g.size * g.size
	return (row-1)*side + (col - 1)
}

// checkCoord validates one 1-based coordinate against its domain.
func (g *Grid) checkCoord(attr ErrorAttribute, val, max int) error {
	if val < 1 || val > max {
		return rangeError(attr, val, 1, max)
	}
	return nil
}

/*

Accessors

*/

// Size returns the grid's box size.
func (g *Grid) Size() int {
	return g.size
}

// SideLength returns the number of cells on one side of the grid.
func (g *Grid) SideLength() int {
	return g.size * g.size
}

// Alphabet returns the grid's alphabet.  Alphabets are slices of
// the shared symbol table and must be treated as read-only.
func (g *Grid) Alphabet() Alphabet {
	return g.alphabet
}

// Cell returns the symbol held by the cell at (col, row).
func (g *Grid) Cell(col, row int) (Symbol, error) {
	side := g.size * g.size
	if err := g.checkCoord(ColumnAttribute, col, side); err != nil {
		return 0, err
	}
	if err := g.checkCoord(RowAttribute, row, side); err != nil {
		return 0, err
	}
	return g.cells[g.cellIndex(col, row)], nil
}

// Row returns the symbols of one grid row, left to right.  The
// result does not share storage with the grid.
func (g *Grid) Row(row int) ([]Symbol, error) {
	side := g.size * g.size
	if err := g.checkCoord(RowAttribute, row, side); err != nil {
		return nil, err
	}
	out := make([]Symbol, side)
	copy(out, g.cells[g.cellIndex(1, row):g.cellIndex(side, row)+1])
	return out, nil
}

// Column returns the symbols of one grid column, top to bottom.
// The result does not share storage with the grid.
func (g *Grid) Column(col int) ([]Symbol, error) {
	side := g.size * g.size
	if err := g.checkCoord(ColumnAttribute, col, side); err != nil {
		return nil, err
	}
	out := make([]Symbol, side)
	for row := 1; row <= side; row++ {
		out[row-1] = g.cells[g.cellIndex(col, row)]
	}
	return out, nil
}

// Box returns the symbols of one box in reading order.  Box
// coordinates are 1-based and range over the box size, not the
// side length.  The result does not share storage with the grid.
func (g *Grid) Box(boxCol, boxRow int) ([]Symbol, error) {
	if err := g.checkCoord(BoxColumnAttribute, boxCol, g.size); err != nil {
		return nil, err
	}
	if err := g.checkCoord(BoxRowAttribute, boxRow, g.size); err != nil {
		return nil, err
	}
	out := make([]Symbol, 0, g.size*g.size)
	baseCol, baseRow := (boxCol-1)*g.size, (boxRow-1)*g.size
	for ir := 1; ir <= g.size; ir++ {
		for ic := 1; ic <= g.size; ic++ {
			out = append(out, g.cells[g.cellIndex(baseCol+ic, baseRow+ir)])
		}
	}
	return out, nil
}

/*

Mutation

*/

// SetCell writes a symbol into the cell at (col, row).  Unless
// skipCheck is set, the write is first validated against the
// grid's placement rules and fails with an illegal-move Error,
// leaving the grid unmodified, if the symbol already appears in
// the target's row, column, or box.  The generator and masker use
// the unchecked path with pre-validated symbols; interactive
// callers should use the checked path.
func (g *Grid) SetCell(sym Symbol, col, row int, skipCheck bool) error {
	if !skipCheck {
		violating, err := g.IsViolating(sym, col, row)
		if err != nil {
			return err
		}
		if violating {
			return moveError(sym, col, row)
		}
	} else {
		side := g.size * g.size
		if err := g.checkCoord(ColumnAttribute, col, side); err != nil {
			return err
		}
		if err := g.checkCoord(RowAttribute, row, side); err != nil {
			return err
		}
	}
	g.cells[g.cellIndex(col, row)] = sym
	return nil
}

// setCell is the internal unchecked write used during generation
// and masking.  Coordinates must already be in range.
func (g *Grid) setCell(sym Symbol, col, row int) {
	g.cells[g.cellIndex(col, row)] = sym
}

/*

Whole-grid operations

*/

// Copy returns a deep copy of the grid with no shared storage.
func (g *Grid) Copy() *Grid {
	c := &Grid{size: g.size, alphabet: g.alphabet, cells: make([]Symbol, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Cells returns a copy of the grid's cell contents in row-major
// order, suitable for FromCells.
func (g *Grid) Cells() []Symbol {
	out := make([]Symbol, len(g.cells))
	copy(out, g.cells)
	return out
}

// Equal reports whether two grids have the same box size and the
// same symbol in every cell.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size {
		return false
	}
	for i, sym := range g.cells {
		if o.cells[i] != sym {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of Empty cells in the grid.
func (g *Grid) EmptyCount() (count int) {
	for _, sym := range g.cells {
		if sym == Empty {
			count++
		}
	}
	return
}
