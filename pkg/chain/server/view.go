package server

import (
	"mime/multipart"
	"net/http"

	"chainfmt/pkg/chain/models"
	"chainfmt/pkg/chain/render"
)

type multipartFile = multipart.File

// uploadHeader carries the bits of the multipart header the handlers use.
type uploadHeader struct {
	Filename string
}

// previewResponse is the JSON shape of the styled table: values plus the
// same colours the workbook surface applies.
type previewResponse struct {
	ConversionID string       `json:"conversion_id"`
	Columns      []string     `json:"columns"`
	Rows         []previewRow `json:"rows"`
	TotalRows    int          `json:"total_rows"`
}

type previewRow struct {
	Cells []previewCell `json:"cells"`
}

type previewCell struct {
	Text string `json:"text"`
	Fill string `json:"fill,omitempty"`
	Font string `json:"font,omitempty"`
}

func buildPreview(conversionID string, report models.Report, plan render.Plan, limit int) previewResponse {
	shown := len(report.Rows)
	if limit > 0 && limit < shown {
		shown = limit
	}

	resp := previewResponse{
		ConversionID: conversionID,
		Columns:      models.ColumnNames[:],
		TotalRows:    len(report.Rows),
		Rows:         make([]previewRow, 0, shown),
	}

	for rowIdx := 0; rowIdx < shown; rowIdx++ {
		row := report.Rows[rowIdx]
		cells := make([]previewCell, models.ColumnCount)
		for col := 0; col < models.ColumnCount; col++ {
			var cell previewCell
			if col == models.ColTime {
				cell.Text = row.Time
			} else {
				cell.Text = render.FormatCell(row.Numeric(col))
			}
			if fill, ok := plan.FillFor(rowIdx, col); ok {
				cell.Fill = fill.Hex()
			}
			if col != models.ColTime {
				if font, ok := plan.FontFor(row.Numeric(col), col); ok {
					cell.Font = font.Hex()
				}
			}
			cells[col] = cell
		}
		resp.Rows = append(resp.Rows, previewRow{Cells: cells})
	}
	return resp
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Option Chain Formatter</title></head>
<body>
<h1>Option Chain Formatter</h1>
<p>Upload an option-chain export to compute MONEY and BEP columns and
download the styled workbook.</p>
<form action="/convert" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".xlsx,.xlsm" required>
  <button type="submit">Convert &amp; Download</button>
</form>
<form action="/preview" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".xlsx,.xlsm" required>
  <label>Rows <input type="number" name="rows" value="0" min="0"></label>
  <button type="submit">Preview</button>
</form>
</body>
</html>
`

const previewHeader = `<!DOCTYPE html>
<html>
<head><title>Preview — %s</title></head>
<body>
<p><a href="/">&larr; back</a></p>
`

const previewFooter = `</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}
