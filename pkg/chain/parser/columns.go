package parser

import (
	"fmt"
	"strconv"
	"strings"

	"chainfmt/pkg/chain/models"
)

// MissingColumnError reports a required (name, occurrence) pair absent from
// the header. It carries the positions that do match the name so the problem
// is diagnosable from the message alone.
type MissingColumnError struct {
	Name       string
	Occurrence int
	Found      []int
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q occurrence %d not found; positions with that name: %v",
		e.Name, e.Occurrence, e.Found)
}

// resolve returns the position of the occurrence-th column named name.
// Matching is exact on the trimmed name, case-sensitive.
func resolve(index models.HeaderIndex, name string, occurrence int) (int, error) {
	found := index.Positions(name)
	if occurrence >= len(found) {
		return 0, &MissingColumnError{Name: name, Occurrence: occurrence, Found: found}
	}
	return found[occurrence], nil
}

// ExtractSeries projects the data block at the column resolved from
// (name, occurrence) and coerces every cell to a number. Cells that do not
// parse become the missing marker, never an error.
func ExtractSeries(index models.HeaderIndex, data [][]string, name string, occurrence int) (models.NamedSeries, error) {
	pos, err := resolve(index, name, occurrence)
	if err != nil {
		return models.NamedSeries{}, err
	}
	values := make([]float64, len(data))
	for i, row := range data {
		values[i] = coerce(row[pos])
	}
	return models.NamedSeries{Name: name, Occurrence: occurrence, Values: values}, nil
}

// ExtractText is ExtractSeries without numeric coercion, for label columns.
func ExtractText(index models.HeaderIndex, data [][]string, name string, occurrence int) ([]string, error) {
	pos, err := resolve(index, name, occurrence)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(data))
	for i, row := range data {
		values[i] = strings.TrimSpace(row[pos])
	}
	return values, nil
}

// coerce parses a cell as a number. Exported sheets format large contract
// counts with thousands separators, so commas are stripped before parsing.
func coerce(cell string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return models.Missing()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Missing()
	}
	return f
}
