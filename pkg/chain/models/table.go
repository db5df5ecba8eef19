package models

// RawTable holds a sheet exactly as read, with no type coercion.
// Row 0 is the export banner, row 1 the real header, rows 2+ the data.
type RawTable struct {
	// Rows is the cell grid, outer slice ordered top to bottom.
	Rows [][]string
}

// HeaderIndex is the positional index of column names derived from the
// header row. Blank header cells are replaced with a synthetic
// "Column_<position>" name, so every position has a non-empty name.
// Duplicate names are kept as-is; callers disambiguate by occurrence
// ordinal in left-to-right order.
type HeaderIndex struct {
	// Names holds one trimmed column name per position.
	Names []string
}

// Positions returns the column positions whose name equals name exactly,
// in left-to-right order.
func (h HeaderIndex) Positions(name string) []int {
	var positions []int
	for i, n := range h.Names {
		if n == name {
			positions = append(positions, i)
		}
	}
	return positions
}

// NamedSeries is the numeric projection of one physical column, aligned to
// the data rows. Cells that did not parse as numbers hold the missing marker.
type NamedSeries struct {
	Name       string
	Occurrence int
	Values     []float64
}
