package parser

import "strings"

// TrimTrailingEmptyRows drops filler rows below the last row that still has
// data. Exports often pad the sheet with hundreds of blank rows; keeping
// them would skew the per-column statistics used for colour scaling.
func TrimTrailingEmptyRows(rows [][]string) [][]string {
	last := -1
	for i := len(rows) - 1; i >= 0; i-- {
		if rowHasData(rows[i]) {
			last = i
			break
		}
	}
	return rows[:last+1]
}

func rowHasData(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
