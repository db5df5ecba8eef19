// Package parser turns a raw option-chain export into the canonical table.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"chainfmt/pkg/chain/models"
)

// Exports carry a one-row banner above the real header, then data.
const (
	headerRow = 1
	dataStart = 2
)

// ErrTooFewRows indicates the sheet has no room for banner, header, and data.
var ErrTooFewRows = errors.New("sheet needs a banner row, a header row, and at least one data row")

// ResolveHeader reads the header row of an export and returns the column
// index plus the data block. Header cells are trimmed; blank or absent cells
// get a synthetic "Column_<position>" name rather than failing. The header
// row's length defines the column count: data rows are padded or truncated
// to match positionally.
func ResolveHeader(raw models.RawTable) (models.HeaderIndex, [][]string, error) {
	if len(raw.Rows) < dataStart+1 {
		return models.HeaderIndex{}, nil, fmt.Errorf("%w: got %d rows", ErrTooFewRows, len(raw.Rows))
	}

	header := raw.Rows[headerRow]
	names := make([]string, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column_%d", i)
		}
		names[i] = name
	}

	data := make([][]string, 0, len(raw.Rows)-dataStart)
	for _, row := range raw.Rows[dataStart:] {
		data = append(data, fitRow(row, len(names)))
	}

	return models.HeaderIndex{Names: names}, data, nil
}

// fitRow pads or truncates row to width cells.
func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}
