// Package chain converts option-chain spreadsheet exports into a canonical,
// styled report.
package chain

import "chainfmt/pkg/chain/render"

// Options configures the extraction side of the pipeline.
type Options struct {
	// Sheet names the sheet to read. Empty means the first sheet.
	Sheet string
}

// RenderOptions configures the styling side of the pipeline.
type RenderOptions struct {
	// Palette supplies every colour both render surfaces use.
	Palette render.Palette
	// HighlightK is the joint top-K depth per side.
	HighlightK int
	// SheetName names the output sheet of the persisted workbook.
	SheetName string
	// MaxColWidth caps auto-sized column widths, in characters.
	MaxColWidth float64
}

// DefaultRenderOptions returns the standard styling settings.
func DefaultRenderOptions() RenderOptions {
	wb := render.DefaultWorkbookOptions()
	return RenderOptions{
		Palette:     render.DefaultPalette(),
		HighlightK:  render.DefaultHighlightK,
		SheetName:   wb.SheetName,
		MaxColWidth: wb.MaxColWidth,
	}
}
