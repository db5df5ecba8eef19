package chain

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"chainfmt/pkg/chain/models"
	"chainfmt/pkg/chain/parser"
	"chainfmt/pkg/chain/render"
)

// The input columns the pipeline needs, as (name, occurrence) pairs.
// Occurrence 0 is the call side, occurrence 1 the put side; the sides sit
// left and right of the strike column in every supported export.
const (
	callSide = 0
	putSide  = 1
)

// Process reads an exported option-chain workbook from a file and produces
// the canonical report. Structural and missing-column errors abort the whole
// run; cell-level anomalies degrade to missing values instead.
func Process(path string, opts Options) (*models.Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return process(f, opts)
}

// ProcessReader is Process over an in-memory workbook, e.g. an upload.
func ProcessReader(r io.Reader, opts Options) (*models.Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return process(f, opts)
}

func process(f *excelize.File, opts Options) (*models.Report, error) {
	sheet := opts.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, ErrNoSheet
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNoSheet, sheet, err)
	}

	raw := models.RawTable{Rows: parser.TrimTrailingEmptyRows(rows)}
	index, data, err := parser.ResolveHeader(raw)
	if err != nil {
		return nil, err
	}

	in, err := extractInputs(index, data)
	if err != nil {
		return nil, err
	}

	report := parser.Derive(in)
	return &report, nil
}

// extractInputs pulls the eight required columns. Extraction errors carry
// their own diagnostics and are returned unwrapped so the caller can surface
// them verbatim.
func extractInputs(index models.HeaderIndex, data [][]string) (parser.Inputs, error) {
	var in parser.Inputs
	var err error

	if in.Time, err = parser.ExtractText(index, data, "Time", callSide); err != nil {
		return in, err
	}
	if in.Strike, err = parser.ExtractSeries(index, data, "Strike Price", callSide); err != nil {
		return in, err
	}
	if in.CEOIChange, err = parser.ExtractSeries(index, data, "OI Chg", callSide); err != nil {
		return in, err
	}
	if in.CEOI, err = parser.ExtractSeries(index, data, "OI", callSide); err != nil {
		return in, err
	}
	if in.CEVWAP, err = parser.ExtractSeries(index, data, "VWAP", callSide); err != nil {
		return in, err
	}
	if in.PEVWAP, err = parser.ExtractSeries(index, data, "VWAP", putSide); err != nil {
		return in, err
	}
	if in.PEOI, err = parser.ExtractSeries(index, data, "OI", putSide); err != nil {
		return in, err
	}
	if in.PEOIChange, err = parser.ExtractSeries(index, data, "OI Chg", putSide); err != nil {
		return in, err
	}
	return in, nil
}

// Convert runs the full pipeline and returns the styled workbook.
func Convert(path string, opts Options, ro RenderOptions) (*excelize.File, error) {
	report, err := Process(path, opts)
	if err != nil {
		return nil, err
	}
	return Render(*report, ro)
}

// ConvertReader is Convert over an in-memory workbook.
func ConvertReader(r io.Reader, opts Options, ro RenderOptions) (*excelize.File, error) {
	report, err := ProcessReader(r, opts)
	if err != nil {
		return nil, err
	}
	return Render(*report, ro)
}

// Render styles an already-computed report into a workbook.
func Render(report models.Report, ro RenderOptions) (*excelize.File, error) {
	plan := render.BuildPlan(report, ro.Palette, ro.HighlightK)
	return render.WriteWorkbook(report, plan, render.WorkbookOptions{
		SheetName:   ro.SheetName,
		MaxColWidth: ro.MaxColWidth,
	})
}

// Plan computes the shared style plan for a report, for callers rendering
// onto their own surface.
func Plan(report models.Report, ro RenderOptions) render.Plan {
	return render.BuildPlan(report, ro.Palette, ro.HighlightK)
}
