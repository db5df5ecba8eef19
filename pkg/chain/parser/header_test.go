package parser

import (
	"errors"
	"reflect"
	"testing"

	"chainfmt/pkg/chain/models"
)

func TestResolveHeader(t *testing.T) {
	raw := models.RawTable{Rows: [][]string{
		{"Exported data"},
		{"Time", " OI Chg ", "", "VWAP"},
		{"09:15", "100", "x", "5.4"},
		{"09:16", "200"},
	}}

	index, data, err := ResolveHeader(raw)
	if err != nil {
		t.Fatalf("ResolveHeader failed: %v", err)
	}

	wantNames := []string{"Time", "OI Chg", "Column_2", "VWAP"}
	if !reflect.DeepEqual(index.Names, wantNames) {
		t.Errorf("names = %v, want %v", index.Names, wantNames)
	}

	if len(data) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(data))
	}
	// Short rows are padded to the header width.
	if len(data[1]) != 4 {
		t.Errorf("expected padded row of 4 cells, got %d", len(data[1]))
	}
	if data[1][2] != "" || data[1][3] != "" {
		t.Errorf("padded cells should be empty, got %q %q", data[1][2], data[1][3])
	}
}

func TestResolveHeaderBlankPositions(t *testing.T) {
	raw := models.RawTable{Rows: [][]string{
		{"banner"},
		{"", "Time", "  ", "OI"},
		{"a", "b", "c", "d"},
	}}

	index, _, err := ResolveHeader(raw)
	if err != nil {
		t.Fatalf("ResolveHeader failed: %v", err)
	}
	for _, tc := range []struct {
		pos  int
		want string
	}{
		{0, "Column_0"},
		{1, "Time"},
		{2, "Column_2"},
		{3, "OI"},
	} {
		if got := index.Names[tc.pos]; got != tc.want {
			t.Errorf("name at %d = %q, want %q", tc.pos, got, tc.want)
		}
	}
}

func TestResolveHeaderTruncatesLongRows(t *testing.T) {
	raw := models.RawTable{Rows: [][]string{
		{"banner"},
		{"Time", "OI"},
		{"09:15", "100", "spill", "over"},
	}}

	_, data, err := ResolveHeader(raw)
	if err != nil {
		t.Fatalf("ResolveHeader failed: %v", err)
	}
	if len(data[0]) != 2 {
		t.Errorf("expected row truncated to 2 cells, got %d", len(data[0]))
	}
}

func TestResolveHeaderTooFewRows(t *testing.T) {
	for _, rows := range [][][]string{
		nil,
		{{"banner"}},
		{{"banner"}, {"Time"}},
	} {
		_, _, err := ResolveHeader(models.RawTable{Rows: rows})
		if !errors.Is(err, ErrTooFewRows) {
			t.Errorf("rows=%d: expected ErrTooFewRows, got %v", len(rows), err)
		}
	}
}

func TestTrimTrailingEmptyRows(t *testing.T) {
	rows := [][]string{
		{"banner"},
		{"Time"},
		{"09:15"},
		{"", "  "},
		{},
	}
	trimmed := TrimTrailingEmptyRows(rows)
	if len(trimmed) != 3 {
		t.Errorf("expected 3 rows after trim, got %d", len(trimmed))
	}

	if got := TrimTrailingEmptyRows([][]string{{""}, {}}); len(got) != 0 {
		t.Errorf("all-empty input should trim to 0 rows, got %d", len(got))
	}
}
