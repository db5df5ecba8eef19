package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"chainfmt/pkg/chain/models"
)

// WorkbookOptions controls the persisted-workbook surface.
type WorkbookOptions struct {
	// SheetName names the single output sheet.
	SheetName string
	// MaxColWidth caps the auto-sized column width, in characters.
	MaxColWidth float64
}

// DefaultWorkbookOptions returns the standard output settings.
func DefaultWorkbookOptions() WorkbookOptions {
	return WorkbookOptions{SheetName: "OptionChain", MaxColWidth: 25}
}

// WriteWorkbook renders the report into a new styled workbook: bordered
// cells, emphasised header, thousands-separated numbers, a frozen header
// row, auto-sized columns, and the fills and font overrides from plan.
func WriteWorkbook(report models.Report, plan Plan, opts WorkbookOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := opts.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles := newStyleSet(f, plan.Palette)

	headerStyle, err := styles.header()
	if err != nil {
		return nil, err
	}
	for col, name := range models.ColumnNames {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range report.Rows {
		for col := 0; col < models.ColumnCount; col++ {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)

			if col == models.ColTime {
				if err := f.SetCellValue(sheet, cell, row.Time); err != nil {
					return nil, err
				}
			} else if v := row.Numeric(col); !models.IsMissing(v) {
				// Missing cells stay blank rather than showing a fake zero.
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}

			styleID, err := styles.data(cellOverrides(plan, row, rowIdx, col))
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return nil, err
			}
		}
	}

	if err := setColumnWidths(f, sheet, report, opts.MaxColWidth); err != nil {
		return nil, err
	}

	// Keep the header visible while scrolling.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	return f, nil
}

// cellOverrides resolves the fill and font a data cell gets from the plan.
func cellOverrides(plan Plan, row models.CanonicalRow, rowIdx, col int) (fill, font *RGB) {
	if c, ok := plan.FillFor(rowIdx, col); ok {
		fill = &c
	}
	if col != models.ColTime {
		if c, ok := plan.FontFor(row.Numeric(col), col); ok {
			font = &c
		}
	}
	return fill, font
}

func setColumnWidths(f *excelize.File, sheet string, report models.Report, maxWidth float64) error {
	for col := 0; col < models.ColumnCount; col++ {
		longest := len(models.ColumnNames[col])
		for _, row := range report.Rows {
			var rendered string
			if col == models.ColTime {
				rendered = row.Time
			} else {
				rendered = FormatCell(row.Numeric(col))
			}
			if len(rendered) > longest {
				longest = len(rendered)
			}
		}

		width := (float64(longest) + 2) * 1.2
		if width > maxWidth {
			width = maxWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// styleSet caches workbook style IDs by fill/font combination so the style
// table stays small no matter how many rows are written.
type styleSet struct {
	f       *excelize.File
	palette Palette
	cache   map[string]int
}

func newStyleSet(f *excelize.File, palette Palette) *styleSet {
	return &styleSet{f: f, palette: palette, cache: make(map[string]int)}
}

func (s *styleSet) header() (int, error) {
	return s.f.NewStyle(&excelize.Style{
		Border: thinBorders(),
		Font:   &excelize.Font{Bold: true, Color: s.palette.HeaderFont.Hex()},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{s.palette.HeaderFill.Hex()},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func (s *styleSet) data(fill, font *RGB) (int, error) {
	key := "|"
	if fill != nil {
		key = fill.Hex() + key
	}
	if font != nil {
		key += font.Hex()
	}
	if id, ok := s.cache[key]; ok {
		return id, nil
	}

	numFmt := numberFormat
	style := &excelize.Style{
		Border:       thinBorders(),
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		CustomNumFmt: &numFmt,
	}
	if fill != nil {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill.Hex()}}
	}
	if font != nil {
		style.Font = &excelize.Font{Color: font.Hex()}
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.cache[key] = id
	return id, nil
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "000000", Style: 1}
	}
	return borders
}
