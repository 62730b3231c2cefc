package puzzle

/*

Summaries: the exchange form of a grid.

*/

// A Summary is the JSON-serializable snapshot of a grid, used to
// move grids into and out of storage.  Cells holds the row-major
// cell contents as a string (every symbol is one ASCII byte).
type Summary struct {
	BoxSize int    `json:"boxSize"`
	Cells   string `json:"cells"`
}

// Summary returns the grid's exchange form.  The result shares no
// storage with the grid.
func (g *Grid) Summary() *Summary {
	return &Summary{BoxSize: g.size, Cells: string(g.Cells())}
}

// FromSummary reconstructs a grid from its exchange form, with the
// same validation as FromCells.  The declared box size must match
// the one derived from the cell count, so a corrupted summary
// can't silently come back as a different-shaped grid.
func FromSummary(s *Summary) (*Grid, error) {
	if s == nil {
		return nil, Error{
			Kind:      InvalidSizeKind,
			Attribute: CellsAttribute,
			Message:   "Invalid size: no summary provided",
		}
	}
	g, err := FromCells([]Symbol(s.Cells))
	if err != nil {
		return nil, err
	}
	if g.size != s.BoxSize {
		return nil, Error{
			Kind:      InvalidSizeKind,
			Attribute: BoxSizeAttribute,
			Values:    ErrorData{s.BoxSize, g.size},
			Message:   "Invalid size: summary box size doesn't match its cell count",
		}
	}
	return g, nil
}
